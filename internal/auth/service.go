package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/studycollab/collab-back/internal/config"
	"github.com/studycollab/collab-back/internal/db"
	"github.com/studycollab/collab-back/internal/models"
)

var googleOauthConfig *oauth2.Config

func InitGoogle(cfg *config.Config) {
	googleOauthConfig = &oauth2.Config{
		RedirectURL:  cfg.GoogleRedirect,
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleSecret,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// @Summary      Login with Google
// @Description  Redirects to the Google consent screen
// @Tags         auth
// @Produce      json
// @Success      307 {string} string "redirect"
// @Router       /auth/google/login [get]
func GoogleLoginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		url := googleOauthConfig.AuthCodeURL("state")
		c.Redirect(http.StatusTemporaryRedirect, url)
	}
}

// @Summary      Google OAuth callback
// @Description  Exchanges the code, upserts the user and returns a token pair
// @Tags         auth
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /auth/google/callback [get]
func GoogleCallbackHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Query("code")
		token, err := googleOauthConfig.Exchange(context.Background(), code)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to exchange token"})
			return
		}

		// Fetch user info
		resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + token.AccessToken)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to get user info"})
			return
		}
		defer resp.Body.Close()

		var userInfo struct {
			Email   string `json:"email"`
			Name    string `json:"name"`
			Picture string `json:"picture"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse user info"})
			return
		}

		user, err := db.SaveOrUpdateUser(c.Request.Context(), models.User{
			Email:    userInfo.Email,
			Name:     userInfo.Name,
			PhotoURL: userInfo.Picture,
			Role:     models.RoleStudent,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save user"})
			return
		}

		tokens, err := IssueTokenPair(cfg.JWTSecret, user.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"access_token":  tokens.AccessToken,
			"refresh_token": tokens.RefreshToken,
			"email":         user.Email,
		})
	}
}
