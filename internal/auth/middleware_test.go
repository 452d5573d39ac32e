package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/studycollab/collab-back/internal/config"
)

const testSecret = "test-secret"

func protectedRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/whoami", AuthMiddleware(&config.Config{JWTSecret: testSecret}), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": c.GetString("email")})
	})
	return r
}

func get(t *testing.T, r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIssueTokenPair(t *testing.T) {
	tokens, err := IssueTokenPair(testSecret, "user@example.com")
	if err != nil {
		t.Fatalf("failed to issue pair: %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", tokens)
	}
	if tokens.AccessToken == tokens.RefreshToken {
		t.Fatalf("access and refresh tokens must differ")
	}

	parsed, err := jwt.Parse(tokens.RefreshToken, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("refresh token does not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["type"] != "refresh" {
		t.Fatalf("refresh token missing type claim: %v", claims)
	}
	if claims["email"] != "user@example.com" {
		t.Fatalf("unexpected email claim: %v", claims["email"])
	}
}

func TestAuthMiddlewareRejectsBadHeaders(t *testing.T) {
	r := protectedRouter(t)

	cases := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"garbage token", "Bearer not.a.token"},
	}
	for _, tc := range cases {
		if w := get(t, r, tc.header); w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", tc.name, w.Code)
		}
	}
}

func TestAuthMiddlewareRejectsRefreshToken(t *testing.T) {
	r := protectedRouter(t)

	tokens, err := IssueTokenPair(testSecret, "user@example.com")
	if err != nil {
		t.Fatalf("failed to issue pair: %v", err)
	}
	if w := get(t, r, "Bearer "+tokens.RefreshToken); w.Code != http.StatusUnauthorized {
		t.Fatalf("refresh token must not pass as access token, got %d", w.Code)
	}
}

func TestAuthMiddlewareRejectsWrongSecret(t *testing.T) {
	r := protectedRouter(t)

	tokens, err := IssueTokenPair("other-secret", "user@example.com")
	if err != nil {
		t.Fatalf("failed to issue pair: %v", err)
	}
	if w := get(t, r, "Bearer "+tokens.AccessToken); w.Code != http.StatusUnauthorized {
		t.Fatalf("foreign-signed token must not pass, got %d", w.Code)
	}
}

func TestAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	r := protectedRouter(t)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "user@example.com",
		"exp":   time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := expired.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign: %v", err)
	}
	if w := get(t, r, "Bearer "+signed); w.Code != http.StatusUnauthorized {
		t.Fatalf("expired token must not pass, got %d", w.Code)
	}
}

func TestAuthMiddlewareSetsEmail(t *testing.T) {
	r := protectedRouter(t)

	tokens, err := IssueTokenPair(testSecret, "user@example.com")
	if err != nil {
		t.Fatalf("failed to issue pair: %v", err)
	}
	w := get(t, r, "Bearer "+tokens.AccessToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	if want := `"user@example.com"`; !strings.Contains(w.Body.String(), want) {
		t.Fatalf("expected email in response, got %s", w.Body.String())
	}
}
