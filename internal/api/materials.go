package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/studycollab/collab-back/internal/db"
	"github.com/studycollab/collab-back/internal/models"
)

type CreateMaterialRequest struct {
	Title     string `json:"title" binding:"required"`
	SessionID uint   `json:"sessionId" binding:"required"`
	ImageURL  string `json:"imageUrl" binding:"omitempty,url"`
	DriveLink string `json:"driveLink" binding:"omitempty,url"`
}

// CreateMaterial godoc
// @Summary      Upload a material for one of the tutor's sessions
// @Tags         materials
// @Accept       json
// @Produce      json
// @Param        body  body  CreateMaterialRequest  true  "Material"
// @Success      201   {object} map[string]interface{}
// @Failure      403   {object} map[string]string
// @Security     BearerAuth
// @Router       /materials [post]
func CreateMaterial(c *gin.Context) {
	email := c.GetString("email")

	var req CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	session, err := db.GetStudySession(c.Request.Context(), formatUint(req.SessionID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch session"})
		return
	}
	if session.TutorEmail != email {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	material := models.Material{
		Title:      req.Title,
		SessionID:  session.ID,
		TutorEmail: email,
		ImageURL:   req.ImageURL,
		DriveLink:  req.DriveLink,
	}
	if err := db.CreateMaterial(c.Request.Context(), &material); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload material"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"insertedId": material.ID, "material": material})
}

// ListTutorMaterials godoc
// @Summary      List the tutor's own materials
// @Tags         materials
// @Produce      json
// @Success      200 {array} models.Material
// @Security     BearerAuth
// @Router       /materials [get]
func ListTutorMaterials(c *gin.Context) {
	materials, err := db.ListMaterialsByTutor(c.Request.Context(), c.GetString("email"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch materials"})
		return
	}
	c.JSON(http.StatusOK, materials)
}

// ListSessionMaterials godoc
// @Summary      List materials for a session
// @Tags         materials
// @Produce      json
// @Param        sessionId  path  int  true  "Session ID"
// @Success      200 {array} models.Material
// @Security     BearerAuth
// @Router       /materials/{sessionId} [get]
func ListSessionMaterials(c *gin.Context) {
	materials, err := db.ListMaterialsBySession(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch materials"})
		return
	}
	c.JSON(http.StatusOK, materials)
}

// DeleteMaterial godoc
// @Summary      Delete one of the tutor's materials
// @Tags         materials
// @Produce      json
// @Param        id  path  int  true  "Material ID"
// @Success      200 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /materials/{id} [delete]
func DeleteMaterial(c *gin.Context) {
	rows, err := db.DeleteMaterial(c.Request.Context(), c.Param("id"), c.GetString("email"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete material"})
		return
	}
	if rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Material not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Material deleted"})
}

// AdminListMaterials godoc
// @Summary      List every material
// @Tags         materials
// @Produce      json
// @Success      200 {array} models.Material
// @Security     BearerAuth
// @Router       /admin/materials [get]
func AdminListMaterials(c *gin.Context) {
	materials, err := db.ListAllMaterials(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch materials"})
		return
	}
	c.JSON(http.StatusOK, materials)
}

// AdminDeleteMaterial godoc
// @Summary      Delete any material
// @Tags         materials
// @Produce      json
// @Param        id  path  int  true  "Material ID"
// @Success      200 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /admin/materials/{id} [delete]
func AdminDeleteMaterial(c *gin.Context) {
	rows, err := db.DeleteMaterial(c.Request.Context(), c.Param("id"), "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete material"})
		return
	}
	if rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Material not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Material deleted"})
}
