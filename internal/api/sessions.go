package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/studycollab/collab-back/internal/auth"
	"github.com/studycollab/collab-back/internal/cache"
	"github.com/studycollab/collab-back/internal/db"
	"github.com/studycollab/collab-back/internal/models"
)

// CreateSessionRequest is the tutor-facing session submission body.
type CreateSessionRequest struct {
	Title             string    `json:"title" binding:"required"`
	Description       string    `json:"description"`
	RegistrationStart time.Time `json:"registrationStart" binding:"required"`
	RegistrationEnd   time.Time `json:"registrationEnd" binding:"required"`
	ClassStart        time.Time `json:"classStart" binding:"required"`
	ClassEnd          time.Time `json:"classEnd" binding:"required"`
	Duration          string    `json:"duration" binding:"required"`
}

// CreateStudySession godoc
// @Summary      Create a study session
// @Description  Submits a new session for admin approval (status=pending, fee 0)
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        body  body  CreateSessionRequest  true  "Session info"
// @Success      201   {object} models.StudySession
// @Failure      400   {object} map[string]string
// @Security     BearerAuth
// @Router       /study-sessions [post]
func CreateStudySession(c *gin.Context) {
	email := c.GetString("email")

	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if req.RegistrationEnd.Before(req.RegistrationStart) || req.ClassEnd.Before(req.ClassStart) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "End date before start date"})
		return
	}

	user, err := db.GetUserByEmail(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	session := models.StudySession{
		Title:             req.Title,
		Description:       req.Description,
		TutorName:         user.Name,
		TutorEmail:        user.Email,
		RegistrationStart: req.RegistrationStart,
		RegistrationEnd:   req.RegistrationEnd,
		ClassStart:        req.ClassStart,
		ClassEnd:          req.ClassEnd,
		Duration:          req.Duration,
		Status:            models.StatusPending,
		RegistrationFee:   0,
	}
	if err := db.CreateStudySession(c.Request.Context(), &session); err != nil {
		zap.S().Errorw("failed to create session", "tutor", email, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusCreated, session)
}

// GetStudySession godoc
// @Summary      Get one study session
// @Tags         sessions
// @Produce      json
// @Param        id   path  int  true  "Session ID"
// @Success      200  {object} models.StudySession
// @Failure      404  {object} map[string]string
// @Security     BearerAuth
// @Router       /study-sessions/{id} [get]
func GetStudySession(c *gin.Context) {
	session, err := db.GetStudySession(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch session"})
		return
	}
	c.JSON(http.StatusOK, session)
}

// ListStudySessions godoc
// @Summary      List study sessions
// @Description  Optionally filtered by tutor email and/or status
// @Tags         sessions
// @Produce      json
// @Param        email   query  string  false  "Tutor email"
// @Param        status  query  string  false  "pending|approved|rejected"
// @Success      200  {array} models.StudySession
// @Security     BearerAuth
// @Router       /study-sessions [get]
func ListStudySessions(c *gin.Context) {
	sessions, err := db.ListStudySessions(c.Request.Context(), c.Query("email"), c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sessions"})
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// PublicStudySessions godoc
// @Summary      List approved sessions without authentication
// @Tags         sessions
// @Produce      json
// @Success      200 {array} models.StudySession
// @Router       /public-study-sessions [get]
func PublicStudySessions(c *gin.Context) {
	sessions, err := db.ListApprovedSessions(c.Request.Context(), 12)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sessions"})
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// PaginateStudySessions godoc
// @Summary      Paginated session listing
// @Tags         sessions
// @Produce      json
// @Param        page    query  int     false  "Page, 1-based"
// @Param        limit   query  int     false  "Page size"
// @Param        status  query  string  false  "pending|approved|rejected"
// @Success      200 {object} map[string]interface{}
// @Router       /study-pagination-sessions [get]
func PaginateStudySessions(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "6"))
	if err != nil || limit < 1 || limit > 50 {
		limit = 6
	}

	sessions, total, err := db.PaginateSessions(c.Request.Context(), page, limit, c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sessions"})
		return
	}

	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}

	c.JSON(http.StatusOK, gin.H{
		"sessions":   sessions,
		"total":      total,
		"totalPages": totalPages,
		"page":       page,
	})
}

// UpdateSessionRequest drives every PATCH transition. Action selects the
// workflow step; without an action it is an admin field edit.
type UpdateSessionRequest struct {
	Action            string     `json:"action" binding:"omitempty,oneof=approve reject resubmit"`
	RegistrationFee   *float64   `json:"registrationFee"`
	RejectionReason   string     `json:"rejectionReason"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Duration          string     `json:"duration"`
	RegistrationStart *time.Time `json:"registrationStart"`
	RegistrationEnd   *time.Time `json:"registrationEnd"`
	ClassStart        *time.Time `json:"classStart"`
	ClassEnd          *time.Time `json:"classEnd"`
}

// UpdateStudySession godoc
// @Summary      Approve, reject, resubmit or edit a session
// @Description  approve/reject/edit require the admin role, resubmit the tutor role
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id    path  int                   true  "Session ID"
// @Param        body  body  UpdateSessionRequest  true  "Transition"
// @Success      200   {object} map[string]interface{}
// @Failure      400   {object} map[string]string
// @Failure      403   {object} map[string]string
// @Failure      409   {object} map[string]string
// @Security     BearerAuth
// @Router       /study-sessions/{id} [patch]
func UpdateStudySession(rc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		id := c.Param("id")

		var req UpdateSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		role, err := auth.ResolveRole(c.Request.Context(), rc, email)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		switch req.Action {
		case "approve":
			if role != models.RoleAdmin {
				c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
				return
			}
			fee := 0.0
			if req.RegistrationFee != nil {
				fee = *req.RegistrationFee
			}
			if fee < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Registration fee must not be negative"})
				return
			}
			rows, err := db.ApproveStudySession(c.Request.Context(), id, fee)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Approval failed"})
				return
			}
			if rows == 0 {
				c.JSON(http.StatusConflict, gin.H{"error": "Only pending sessions can be approved"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "Session approved", "registrationFee": fee})

		case "reject":
			if role != models.RoleAdmin {
				c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
				return
			}
			if req.RejectionReason == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Rejection reason is required"})
				return
			}
			rows, err := db.RejectStudySession(c.Request.Context(), id, req.RejectionReason)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Rejection failed"})
				return
			}
			if rows == 0 {
				c.JSON(http.StatusConflict, gin.H{"error": "Only pending sessions can be rejected"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "Session rejected"})

		case "resubmit":
			if role != models.RoleTutor {
				c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
				return
			}
			rows, err := db.ResubmitStudySession(c.Request.Context(), id, email)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Resubmission failed"})
				return
			}
			if rows == 0 {
				c.JSON(http.StatusConflict, gin.H{"error": "Only your rejected sessions can be resubmitted"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "Session resubmitted for approval"})

		default:
			if role != models.RoleAdmin {
				c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
				return
			}
			fields := map[string]interface{}{}
			if req.Title != "" {
				fields["title"] = req.Title
			}
			if req.Description != "" {
				fields["description"] = req.Description
			}
			if req.Duration != "" {
				fields["duration"] = req.Duration
			}
			if req.RegistrationFee != nil {
				fields["registration_fee"] = *req.RegistrationFee
			}
			if req.RegistrationStart != nil {
				fields["registration_start"] = *req.RegistrationStart
			}
			if req.RegistrationEnd != nil {
				fields["registration_end"] = *req.RegistrationEnd
			}
			if req.ClassStart != nil {
				fields["class_start"] = *req.ClassStart
			}
			if req.ClassEnd != nil {
				fields["class_end"] = *req.ClassEnd
			}
			if len(fields) == 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
				return
			}
			rows, err := db.UpdateStudySessionFields(c.Request.Context(), id, fields)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed"})
				return
			}
			if rows == 0 {
				c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "Session updated"})
		}
	}
}

// DeleteStudySession godoc
// @Summary      Delete a non-pending session
// @Tags         sessions
// @Produce      json
// @Param        id  path  int  true  "Session ID"
// @Success      200 {object} map[string]string
// @Failure      400 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /study-sessions/{id} [delete]
func DeleteStudySession(c *gin.Context) {
	id := c.Param("id")

	rows, err := db.DeleteStudySession(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete session"})
		return
	}
	if rows == 0 {
		if _, err := db.GetStudySession(c.Request.Context(), id); err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Pending sessions cannot be deleted"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session deleted"})
}
