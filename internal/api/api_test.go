package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/studycollab/collab-back/internal/auth"
	"github.com/studycollab/collab-back/internal/cache"
	"github.com/studycollab/collab-back/internal/config"
	"github.com/studycollab/collab-back/internal/db"
	"github.com/studycollab/collab-back/internal/models"
)

type stubIntents struct {
	secret string
	err    error
}

func (s stubIntents) CreateIntent(_ context.Context, _ int64, _, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.secret, nil
}

// setupRouter wires the full router against a fresh in-memory database
// and a disabled cache, so every test sees the real middleware chain.
func setupRouter(t *testing.T) (*gin.Engine, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	db.DB = gdb

	cfg := &config.Config{JWTSecret: "test-secret", Environment: "test"}
	rc, err := cache.New("", "")
	if err != nil {
		t.Fatalf("failed to build cache: %v", err)
	}

	return SetupRouter(cfg, stubIntents{secret: "cs_test_123"}, rc), cfg
}

func seedUser(t *testing.T, email, role string) models.User {
	t.Helper()
	u := models.User{Email: email, Name: strings.Split(email, "@")[0], Role: role}
	if err := db.DB.Create(&u).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", email, err)
	}
	return u
}

func seedSession(t *testing.T, tutorEmail, status string, fee float64, registrationEnd time.Time) models.StudySession {
	t.Helper()
	s := models.StudySession{
		Title:             "Algebra Crash Course",
		Description:       "Weekly group revision",
		TutorName:         strings.Split(tutorEmail, "@")[0],
		TutorEmail:        tutorEmail,
		RegistrationStart: registrationEnd.AddDate(0, -1, 0),
		RegistrationEnd:   registrationEnd,
		ClassStart:        registrationEnd.AddDate(0, 0, 7),
		ClassEnd:          registrationEnd.AddDate(0, 1, 0),
		Duration:          "2 weeks",
		Status:            status,
		RegistrationFee:   fee,
	}
	if err := db.DB.Create(&s).Error; err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
	return s
}

func bearer(t *testing.T, cfg *config.Config, email string) string {
	t.Helper()
	tokens, err := auth.IssueTokenPair(cfg.JWTSecret, email)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return "Bearer " + tokens.AccessToken
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	r, cfg := setupRouter(t)
	seedUser(t, "student@example.com", models.RoleStudent)

	if w := doRequest(t, r, http.MethodGet, "/study-sessions", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
	if w := doRequest(t, r, http.MethodGet, "/study-sessions", "Basic abc", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with non-bearer header, got %d", w.Code)
	}
	if w := doRequest(t, r, http.MethodGet, "/study-sessions", bearer(t, cfg, "student@example.com"), nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", w.Code)
	}
}

func TestAdminRouteForbiddenForOtherRoles(t *testing.T) {
	r, cfg := setupRouter(t)
	seedUser(t, "student@example.com", models.RoleStudent)
	seedUser(t, "tutor@example.com", models.RoleTutor)
	seedUser(t, "admin@example.com", models.RoleAdmin)

	for _, email := range []string{"student@example.com", "tutor@example.com"} {
		if w := doRequest(t, r, http.MethodGet, "/users", bearer(t, cfg, email), nil); w.Code != http.StatusForbidden {
			t.Fatalf("expected 403 for %s, got %d", email, w.Code)
		}
	}
	if w := doRequest(t, r, http.MethodGet, "/users", bearer(t, cfg, "admin@example.com"), nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", w.Code)
	}
}

func TestTutorRouteForbiddenForStudent(t *testing.T) {
	r, cfg := setupRouter(t)
	seedUser(t, "student@example.com", models.RoleStudent)

	body := gin.H{
		"title":             "Sets and Logic",
		"registrationStart": time.Now().Format(time.RFC3339),
		"registrationEnd":   time.Now().AddDate(0, 0, 7).Format(time.RFC3339),
		"classStart":        time.Now().AddDate(0, 0, 10).Format(time.RFC3339),
		"classEnd":          time.Now().AddDate(0, 1, 0).Format(time.RFC3339),
		"duration":          "3 weeks",
	}
	if w := doRequest(t, r, http.MethodPost, "/study-sessions", bearer(t, cfg, "student@example.com"), body); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestPublicListingNeedsNoToken(t *testing.T) {
	r, _ := setupRouter(t)
	seedSession(t, "tutor@example.com", models.StatusApproved, 0, time.Now().AddDate(0, 0, 7))
	seedSession(t, "tutor@example.com", models.StatusPending, 0, time.Now().AddDate(0, 0, 7))

	w := doRequest(t, r, http.MethodGet, "/public-study-sessions", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var sessions []models.StudySession
	if err := json.Unmarshal(w.Body.Bytes(), &sessions); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected only the approved session, got %d", len(sessions))
	}
}
