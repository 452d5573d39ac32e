package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studycollab/collab-back/internal/db"
	"github.com/studycollab/collab-back/internal/models"
)

type CreateReviewRequest struct {
	SessionID  uint   `json:"sessionId" binding:"required"`
	ReviewText string `json:"reviewText"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
}

// CreateReview godoc
// @Summary      Review a session
// @Description  Rating is 1-5; one review per student per session.
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        body  body  CreateReviewRequest  true  "Review"
// @Success      201   {object} map[string]interface{}
// @Failure      400   {object} map[string]string
// @Failure      409   {object} map[string]string
// @Security     BearerAuth
// @Router       /reviews [post]
func CreateReview(c *gin.Context) {
	email := c.GetString("email")

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := db.GetUserByEmail(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	review := models.Review{
		SessionID:    req.SessionID,
		StudentEmail: user.Email,
		StudentName:  user.Name,
		StudentPhoto: user.PhotoURL,
		ReviewText:   req.ReviewText,
		Rating:       req.Rating,
	}
	if err := db.CreateReview(c.Request.Context(), &review); err != nil {
		if errors.Is(err, db.ErrAlreadyReviewed) {
			c.JSON(http.StatusConflict, gin.H{"error": "Already reviewed"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit review"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"insertedId": review.ID, "review": review})
}

// ListReviews godoc
// @Summary      List reviews for a session
// @Tags         reviews
// @Produce      json
// @Param        sessionId  query  string  true  "Session ID"
// @Success      200 {array} models.Review
// @Router       /reviews [get]
func ListReviews(c *gin.Context) {
	sessionID := c.Query("sessionId")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing sessionId"})
		return
	}

	reviews, err := db.ListReviewsBySession(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}
	c.JSON(http.StatusOK, reviews)
}
