package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/studycollab/collab-back/internal/models"
)

func TestNoteRoundTrip(t *testing.T) {
	r, cfg := setupRouter(t)
	seedUser(t, "student@example.com", models.RoleStudent)
	student := bearer(t, cfg, "student@example.com")

	w := doRequest(t, r, http.MethodPost, "/notes", student,
		gin.H{"title": "Chapter 4 recap", "description": "Derivatives and limits"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", w.Code, w.Body.String())
	}

	w = doRequest(t, r, http.MethodGet, "/notes?email=student@example.com", student, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var notes []models.Note
	if err := json.Unmarshal(w.Body.Bytes(), &notes); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(notes))
	}
	if notes[0].Title != "Chapter 4 recap" || notes[0].Description != "Derivatives and limits" {
		t.Fatalf("note came back changed: %+v", notes[0])
	}
}

func TestNotesAreOwnerScoped(t *testing.T) {
	r, cfg := setupRouter(t)
	seedUser(t, "student@example.com", models.RoleStudent)
	seedUser(t, "other@example.com", models.RoleStudent)
	student := bearer(t, cfg, "student@example.com")
	other := bearer(t, cfg, "other@example.com")

	w := doRequest(t, r, http.MethodPost, "/notes", student, gin.H{"title": "Private", "description": "mine"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	noteID := decodeBody(t, w)["insertedId"].(float64)

	// Listing someone else's notes is refused.
	if w := doRequest(t, r, http.MethodGet, "/notes?email=student@example.com", other, nil); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}

	// Updating or deleting someone else's note looks like a missing note.
	path := "/notes/" + formatUint(uint(noteID))
	if w := doRequest(t, r, http.MethodPut, path, other, gin.H{"title": "hijack", "description": ""}); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on foreign update, got %d", w.Code)
	}
	if w := doRequest(t, r, http.MethodDelete, path, other, nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on foreign delete, got %d", w.Code)
	}

	// The owner can still update it.
	if w := doRequest(t, r, http.MethodPut, path, student, gin.H{"title": "Updated", "description": "still mine"}); w.Code != http.StatusOK {
		t.Fatalf("expected 200 on own update, got %d", w.Code)
	}
}
