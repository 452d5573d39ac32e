package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/studycollab/collab-back/internal/auth"
	"github.com/studycollab/collab-back/internal/cache"
	"github.com/studycollab/collab-back/internal/db"
	"github.com/studycollab/collab-back/internal/models"
)

// GetMe godoc
// @Summary      Get current user profile
// @Tags         users
// @Produce      json
// @Success      200 {object} models.User
// @Failure      401 {object} map[string]string
// @Security     BearerAuth
// @Router       /users/me [get]
func GetMe(c *gin.Context) {
	email := c.GetString("email")

	user, err := db.GetUserByEmail(c.Request.Context(), email)
	if err != nil {
		zap.S().Warnw("profile lookup failed", "email", email, "error", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetUserRole godoc
// @Summary      Resolve a user's role
// @Description  Cached by identity; resolves the caller's own email unless
// @Description  an admin passes another one.
// @Tags         users
// @Produce      json
// @Param        email  query  string  false  "Email to resolve (admin only)"
// @Success      200 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Security     BearerAuth
// @Router       /users/role [get]
func GetUserRole(rc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerEmail := c.GetString("email")

		email := c.DefaultQuery("email", callerEmail)
		if email != callerEmail {
			callerRole, err := auth.ResolveRole(c.Request.Context(), rc, callerEmail)
			if err != nil || callerRole != models.RoleAdmin {
				c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
				return
			}
		}

		role, err := auth.ResolveRole(c.Request.Context(), rc, email)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"role": role})
	}
}

// SearchUsers godoc
// @Summary      List users, optionally filtered by name or email
// @Tags         users
// @Produce      json
// @Param        search  query  string  false  "Name or email fragment"
// @Success      200 {array} models.User
// @Security     BearerAuth
// @Router       /users [get]
func SearchUsers(c *gin.Context) {
	users, err := db.SearchUsers(c.Request.Context(), c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=student tutor admin"`
}

// UpdateUserRole godoc
// @Summary      Change a user's role
// @Description  Busts the role cache so the change applies on the next request.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path  int                true  "User ID"
// @Param        body  body  UpdateRoleRequest  true  "New role"
// @Success      200   {object} map[string]int64
// @Failure      400   {object} map[string]string
// @Security     BearerAuth
// @Router       /users/{id} [patch]
func UpdateUserRole(rc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var req UpdateRoleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
			return
		}

		target, err := db.GetUserByID(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		rows, err := db.UpdateUserRole(c.Request.Context(), id, req.Role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
			return
		}
		if err := rc.InvalidateRole(c.Request.Context(), target.Email); err != nil {
			zap.S().Warnw("role cache invalidation failed", "email", target.Email, "error", err)
		}

		c.JSON(http.StatusOK, gin.H{"modifiedCount": rows})
	}
}

// ListTutors godoc
// @Summary      Tutor directory
// @Tags         users
// @Produce      json
// @Success      200 {array} models.User
// @Router       /tutors [get]
func ListTutors(c *gin.Context) {
	tutors, err := db.ListTutors(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tutors"})
		return
	}
	c.JSON(http.StatusOK, tutors)
}

// GetUserStats godoc
// @Summary      Aggregate platform counts
// @Description  Served from the warmed cache snapshot when available.
// @Tags         users
// @Produce      json
// @Success      200 {object} models.UserStats
// @Security     BearerAuth
// @Router       /user-stats [get]
func GetUserStats(rc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		if stats, hit, err := rc.Stats(c.Request.Context()); err == nil && hit {
			c.JSON(http.StatusOK, stats)
			return
		}

		stats, err := db.GetUserStats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
			return
		}
		if err := rc.SetStats(c.Request.Context(), stats); err != nil {
			zap.S().Warnw("stats cache write failed", "error", err)
		}
		c.JSON(http.StatusOK, stats)
	}
}

func formatUint(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
