package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studycollab/collab-back/internal/db"
	"github.com/studycollab/collab-back/internal/models"
)

type NoteRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// CreateNote godoc
// @Summary      Create a personal note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        body  body  NoteRequest  true  "Note"
// @Success      201   {object} map[string]interface{}
// @Failure      400   {object} map[string]string
// @Security     BearerAuth
// @Router       /notes [post]
func CreateNote(c *gin.Context) {
	email := c.GetString("email")

	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	note := models.Note{
		Email:       email,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := db.CreateNote(c.Request.Context(), &note); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create note"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"insertedId": note.ID, "note": note})
}

// ListNotes godoc
// @Summary      List the caller's notes
// @Tags         notes
// @Produce      json
// @Success      200 {array} models.Note
// @Security     BearerAuth
// @Router       /notes [get]
func ListNotes(c *gin.Context) {
	email := c.GetString("email")

	queryEmail := c.DefaultQuery("email", email)
	if queryEmail != email {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	notes, err := db.ListNotesByEmail(c.Request.Context(), queryEmail)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notes"})
		return
	}
	c.JSON(http.StatusOK, notes)
}

// UpdateNote godoc
// @Summary      Update one of the caller's notes
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        id    path  int          true  "Note ID"
// @Param        body  body  NoteRequest  true  "Note"
// @Success      200   {object} map[string]string
// @Failure      404   {object} map[string]string
// @Security     BearerAuth
// @Router       /notes/{id} [put]
func UpdateNote(c *gin.Context) {
	email := c.GetString("email")

	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	rows, err := db.UpdateNote(c.Request.Context(), c.Param("id"), email, req.Title, req.Description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update note"})
		return
	}
	if rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Note updated"})
}

// DeleteNote godoc
// @Summary      Delete one of the caller's notes
// @Tags         notes
// @Produce      json
// @Param        id  path  int  true  "Note ID"
// @Success      200 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /notes/{id} [delete]
func DeleteNote(c *gin.Context) {
	email := c.GetString("email")

	rows, err := db.DeleteNote(c.Request.Context(), c.Param("id"), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete note"})
		return
	}
	if rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Note deleted"})
}
