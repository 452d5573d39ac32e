package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/studycollab/collab-back/internal/cache"
	"github.com/studycollab/collab-back/internal/config"
	"github.com/studycollab/collab-back/internal/db"
)

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing Authorization header"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header"})
			return
		}

		jwtSecret := []byte(cfg.JWTSecret)

		tokenStr := parts[1]
		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid claims"})
			return
		}
		if claims["type"] == "refresh" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		email, ok := claims["email"].(string)
		if !ok || email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid claims"})
			return
		}

		c.Set("email", email)
		c.Next()
	}
}

// ResolveRole looks up the caller's role, cache first, then database.
// Roles are resolved per request instead of trusted from token claims so
// an admin role change applies immediately.
func ResolveRole(ctx context.Context, rc *cache.Cache, email string) (string, error) {
	role, hit, err := rc.Role(ctx, email)
	if err != nil {
		zap.S().Warnw("role cache lookup failed", "email", email, "error", err)
	}
	if hit {
		return role, nil
	}

	role, err = db.GetRoleByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if err := rc.SetRole(ctx, email, role); err != nil {
		zap.S().Warnw("role cache write failed", "email", email, "error", err)
	}
	return role, nil
}

// RequireRole gates a route group on the caller's resolved role.
func RequireRole(rc *cache.Cache, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")

		resolved, err := ResolveRole(c.Request.Context(), rc, email)
		if err != nil || resolved != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.Set("role", resolved)
		c.Next()
	}
}
