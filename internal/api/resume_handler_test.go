package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"jobvault/internal/database"
	"jobvault/internal/service"
)

func TestReorderSectionsEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	userID := seedUser(t, db, "alice")

	resumes := service.NewResumeService(db)
	composite, err := resumes.Seed(context.Background(), userID)
	if err != nil {
		t.Fatalf("seed resume: %v", err)
	}

	h := NewResumeHandler(db, true)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(
		http.MethodPost,
		"/api/resumes/1/sections/reorder",
		strings.NewReader(`{"from":0,"to":2}`),
	)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: strconv.Itoa(int(composite.Resume.ID))}}
	c.Set("userID", userID)

	h.ReorderSections(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}

	var sections []database.ResumeSection
	if err := json.Unmarshal(w.Body.Bytes(), &sections); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(sections) != len(composite.Sections) {
		t.Fatalf("section count = %d", len(sections))
	}
	for i, s := range sections {
		if s.OrderIndex != i {
			t.Fatalf("position %d has order index %d", i, s.OrderIndex)
		}
	}
	if sections[2].ID != composite.Sections[0].ID {
		t.Fatalf("moved section not at destination")
	}
}

func TestReorderSectionsEndpointRejectsOutOfRange(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	userID := seedUser(t, db, "alice")

	resumes := service.NewResumeService(db)
	composite, err := resumes.Seed(context.Background(), userID)
	if err != nil {
		t.Fatalf("seed resume: %v", err)
	}

	h := NewResumeHandler(db, true)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(
		http.MethodPost,
		"/api/resumes/1/sections/reorder",
		strings.NewReader(`{"from":0,"to":42}`),
	)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: strconv.Itoa(int(composite.Resume.ID))}}
	c.Set("userID", userID)

	h.ReorderSections(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
}

func TestPreviewEndpointMatchesSectionOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	userID := seedUser(t, db, "alice")

	resumes := service.NewResumeService(db)
	composite, err := resumes.Seed(context.Background(), userID)
	if err != nil {
		t.Fatalf("seed resume: %v", err)
	}

	h := NewResumeHandler(db, true)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/resumes/1/preview", nil)
	c.Params = gin.Params{{Key: "id", Value: strconv.Itoa(int(composite.Resume.ID))}}
	c.Set("userID", userID)

	h.Preview(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}

	var layout struct {
		Sections []struct {
			Title      string `json:"title"`
			OrderIndex int    `json:"order_index"`
		} `json:"sections"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &layout); err != nil {
		t.Fatalf("decode layout: %v", err)
	}
	if len(layout.Sections) != len(composite.Sections) {
		t.Fatalf("layout sections = %d", len(layout.Sections))
	}
	for i, s := range layout.Sections {
		if s.Title != composite.Sections[i].Title {
			t.Fatalf("layout position %d = %q, want %q", i, s.Title, composite.Sections[i].Title)
		}
	}
}
