package api

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/studycollab/collab-back/internal/db"
	"github.com/studycollab/collab-back/internal/models"
)

func sessionByID(t *testing.T, id uint) models.StudySession {
	t.Helper()
	var s models.StudySession
	if err := db.DB.First(&s, id).Error; err != nil {
		t.Fatalf("failed to reload session %d: %v", id, err)
	}
	return s
}

func TestApproveSetsStatusAndFee(t *testing.T) {
	r, cfg := setupRouter(t)
	seedUser(t, "admin@example.com", models.RoleAdmin)
	admin := bearer(t, cfg, "admin@example.com")

	cases := []struct {
		name string
		fee  float64
	}{
		{"free", 0},
		{"paid", 49.99},
	}
	for _, tc := range cases {
		session := seedSession(t, "tutor@example.com", models.StatusPending, 0, time.Now().AddDate(0, 0, 7))

		w := doRequest(t, r, http.MethodPatch, "/study-sessions/"+formatUint(session.ID), admin,
			gin.H{"action": "approve", "registrationFee": tc.fee})
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d (%s)", tc.name, w.Code, w.Body.String())
		}

		got := sessionByID(t, session.ID)
		if got.Status != models.StatusApproved {
			t.Fatalf("%s: expected approved, got %s", tc.name, got.Status)
		}
		if got.RegistrationFee != tc.fee {
			t.Fatalf("%s: expected fee %v, got %v", tc.name, tc.fee, got.RegistrationFee)
		}
	}
}

func TestApproveNonPendingConflicts(t *testing.T) {
	r, cfg := setupRouter(t)
	seedUser(t, "admin@example.com", models.RoleAdmin)
	session := seedSession(t, "tutor@example.com", models.StatusApproved, 10, time.Now().AddDate(0, 0, 7))

	w := doRequest(t, r, http.MethodPatch, "/study-sessions/"+formatUint(session.ID),
		bearer(t, cfg, "admin@example.com"), gin.H{"action": "approve", "registrationFee": 5.0})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if got := sessionByID(t, session.ID); got.RegistrationFee != 10 {
		t.Fatalf("fee must be untouched, got %v", got.RegistrationFee)
	}
}

func TestRejectRequiresReason(t *testing.T) {
	r, cfg := setupRouter(t)
	seedUser(t, "admin@example.com", models.RoleAdmin)
	session := seedSession(t, "tutor@example.com", models.StatusPending, 0, time.Now().AddDate(0, 0, 7))

	w := doRequest(t, r, http.MethodPatch, "/study-sessions/"+formatUint(session.ID),
		bearer(t, cfg, "admin@example.com"), gin.H{"action": "reject"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without reason, got %d", w.Code)
	}
	if got := sessionByID(t, session.ID); got.Status != models.StatusPending {
		t.Fatalf("session must stay pending, got %s", got.Status)
	}
}

func TestRejectStoresReason(t *testing.T) {
	r, cfg := setupRouter(t)
	seedUser(t, "admin@example.com", models.RoleAdmin)
	session := seedSession(t, "tutor@example.com", models.StatusPending, 0, time.Now().AddDate(0, 0, 7))

	w := doRequest(t, r, http.MethodPatch, "/study-sessions/"+formatUint(session.ID),
		bearer(t, cfg, "admin@example.com"), gin.H{"action": "reject", "rejectionReason": "overlapping schedule"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	got := sessionByID(t, session.ID)
	if got.Status != models.StatusRejected {
		t.Fatalf("expected rejected, got %s", got.Status)
	}
	if got.RejectionReason != "overlapping schedule" {
		t.Fatalf("expected reason stored, got %q", got.RejectionReason)
	}
}

func TestResubmitClearsRejection(t *testing.T) {
	r, cfg := setupRouter(t)
	seedUser(t, "tutor@example.com", models.RoleTutor)
	session := seedSession(t, "tutor@example.com", models.StatusRejected, 0, time.Now().AddDate(0, 0, 7))
	db.DB.Model(&models.StudySession{}).Where("id = ?", session.ID).Update("rejection_reason", "too vague")

	w := doRequest(t, r, http.MethodPatch, "/study-sessions/"+formatUint(session.ID),
		bearer(t, cfg, "tutor@example.com"), gin.H{"action": "resubmit"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	got := sessionByID(t, session.ID)
	if got.Status != models.StatusPending {
		t.Fatalf("expected pending, got %s", got.Status)
	}
	if got.RejectionReason != "" {
		t.Fatalf("expected rejection reason cleared, got %q", got.RejectionReason)
	}
}

func TestResubmitOnlyByOwningTutor(t *testing.T) {
	r, cfg := setupRouter(t)
	seedUser(t, "other@example.com", models.RoleTutor)
	session := seedSession(t, "tutor@example.com", models.StatusRejected, 0, time.Now().AddDate(0, 0, 7))

	w := doRequest(t, r, http.MethodPatch, "/study-sessions/"+formatUint(session.ID),
		bearer(t, cfg, "other@example.com"), gin.H{"action": "resubmit"})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if got := sessionByID(t, session.ID); got.Status != models.StatusRejected {
		t.Fatalf("session must stay rejected, got %s", got.Status)
	}
}

func TestDeletePendingSessionRefused(t *testing.T) {
	r, cfg := setupRouter(t)
	seedUser(t, "admin@example.com", models.RoleAdmin)
	admin := bearer(t, cfg, "admin@example.com")

	pending := seedSession(t, "tutor@example.com", models.StatusPending, 0, time.Now().AddDate(0, 0, 7))
	if w := doRequest(t, r, http.MethodDelete, "/study-sessions/"+formatUint(pending.ID), admin, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 deleting pending session, got %d", w.Code)
	}

	approved := seedSession(t, "tutor@example.com", models.StatusApproved, 0, time.Now().AddDate(0, 0, 7))
	booking := models.BookedSession{SessionID: approved.ID, StudentEmail: "student@example.com", PaymentStatus: models.PaymentPaid}
	if err := db.DB.Create(&booking).Error; err != nil {
		t.Fatalf("failed to seed booking: %v", err)
	}

	if w := doRequest(t, r, http.MethodDelete, "/study-sessions/"+formatUint(approved.ID), admin, nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200 deleting approved session, got %d", w.Code)
	}

	var count int64
	db.DB.Model(&models.BookedSession{}).Where("session_id = ?", approved.ID).Count(&count)
	if count != 0 {
		t.Fatalf("expected bookings cascaded, %d left", count)
	}
}

func TestTutorCreatesPendingSession(t *testing.T) {
	r, cfg := setupRouter(t)
	seedUser(t, "tutor@example.com", models.RoleTutor)

	body := gin.H{
		"title":             "Intro to Graph Theory",
		"description":       "Evening study circle",
		"registrationStart": time.Now().Format(time.RFC3339),
		"registrationEnd":   time.Now().AddDate(0, 0, 14).Format(time.RFC3339),
		"classStart":        time.Now().AddDate(0, 0, 21).Format(time.RFC3339),
		"classEnd":          time.Now().AddDate(0, 2, 0).Format(time.RFC3339),
		"duration":          "6 weeks",
	}
	w := doRequest(t, r, http.MethodPost, "/study-sessions", bearer(t, cfg, "tutor@example.com"), body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", w.Code, w.Body.String())
	}

	var created models.StudySession
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if created.Status != models.StatusPending {
		t.Fatalf("expected pending, got %s", created.Status)
	}
	if created.RegistrationFee != 0 {
		t.Fatalf("expected fee 0, got %v", created.RegistrationFee)
	}
	if created.TutorEmail != "tutor@example.com" {
		t.Fatalf("tutor email must come from the token, got %s", created.TutorEmail)
	}
}

func TestPaginateSessions(t *testing.T) {
	r, _ := setupRouter(t)
	for i := 0; i < 8; i++ {
		seedSession(t, "tutor@example.com", models.StatusApproved, 0, time.Now().AddDate(0, 0, 7))
	}
	seedSession(t, "tutor@example.com", models.StatusPending, 0, time.Now().AddDate(0, 0, 7))

	w := doRequest(t, r, http.MethodGet, "/study-pagination-sessions?page=2&limit=3&status=approved", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	body := decodeBody(t, w)
	if got := body["total"].(float64); got != 8 {
		t.Fatalf("expected total 8, got %v", got)
	}
	if got := body["totalPages"].(float64); got != 3 {
		t.Fatalf("expected 3 pages, got %v", got)
	}
	sessions := body["sessions"].([]interface{})
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions on page 2, got %d", len(sessions))
	}
}
