package service

import (
	"context"
	"testing"

	"jobvault/internal/apperr"
	"jobvault/internal/database"
	"jobvault/internal/resume"
)

func seedResume(t *testing.T, svc *ResumeService, userID uint) *ResumeWithSections {
	t.Helper()
	composite, err := svc.Seed(context.Background(), userID)
	if err != nil {
		t.Fatalf("seed resume: %v", err)
	}
	return composite
}

func TestResumeGetNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewResumeService(db)
	userID := seedUser(t, db, "alice")

	_, err := svc.Get(context.Background(), userID, 9999)
	if !apperr.IsKind(err, apperr.NotFound) {
		t.Fatalf("err = %v, want NotFound (raw persistence errors must not escape)", err)
	}
}

func TestResumeGetReturnsSectionsInOrderIndexOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewResumeService(db)
	ctx := context.Background()
	userID := seedUser(t, db, "alice")

	row, err := svc.Create(ctx, userID, ResumeInput{Name: "Ordering"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Insert rows whose insertion order disagrees with order_index.
	rows := []database.ResumeSection{
		{ResumeID: row.ID, Type: resume.SectionSkills, Title: "Skills", OrderIndex: 2},
		{ResumeID: row.ID, Type: resume.SectionSummary, Title: "Summary", OrderIndex: 0},
		{ResumeID: row.ID, Type: resume.SectionExperience, Title: "Experience", OrderIndex: 1},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("seed section: %v", err)
		}
	}

	composite, err := svc.Get(ctx, userID, row.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	want := []string{"Summary", "Experience", "Skills"}
	for i, s := range composite.Sections {
		if s.Title != want[i] {
			t.Fatalf("position %d = %q, want %q", i, s.Title, want[i])
		}
	}

	layout := BuildResumeLayout(composite)
	for i, v := range layout.Sections {
		if v.Title != want[i] {
			t.Fatalf("layout position %d = %q, want %q", i, v.Title, want[i])
		}
	}
}

func TestResumeSeedCreatesSampleWithContiguousSections(t *testing.T) {
	db := newTestDB(t)
	svc := NewResumeService(db)
	userID := seedUser(t, db, "alice")

	composite := seedResume(t, svc, userID)
	if composite.Resume.Name != "Sample Resume" {
		t.Fatalf("name = %q", composite.Resume.Name)
	}
	if len(composite.Sections) != 5 {
		t.Fatalf("section count = %d", len(composite.Sections))
	}
	for i, s := range composite.Sections {
		if s.OrderIndex != i {
			t.Fatalf("section %d has order index %d", i, s.OrderIndex)
		}
	}
}

func TestReorderSectionsPersistsContiguousOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewResumeService(db)
	ctx := context.Background()
	userID := seedUser(t, db, "alice")
	composite := seedResume(t, svc, userID)

	before := composite.Sections
	after, err := svc.ReorderSections(ctx, userID, composite.Resume.ID, 0, 3)
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}

	if len(after) != len(before) {
		t.Fatalf("section count changed: %d -> %d", len(before), len(after))
	}
	for i, s := range after {
		if s.OrderIndex != i {
			t.Fatalf("position %d has order index %d", i, s.OrderIndex)
		}
	}
	if after[3].ID != before[0].ID {
		t.Fatalf("moved section not at destination, got id %d", after[3].ID)
	}

	// The permutation is stable for untouched sections.
	wantIDs := []uint{before[1].ID, before[2].ID, before[3].ID, before[0].ID, before[4].ID}
	for i, s := range after {
		if s.ID != wantIDs[i] {
			t.Fatalf("position %d holds id %d, want %d", i, s.ID, wantIDs[i])
		}
	}
}

func TestReorderSectionsRejectsOutOfRange(t *testing.T) {
	db := newTestDB(t)
	svc := NewResumeService(db)
	ctx := context.Background()
	userID := seedUser(t, db, "alice")
	composite := seedResume(t, svc, userID)

	_, err := svc.ReorderSections(ctx, userID, composite.Resume.ID, 0, 99)
	if !apperr.IsKind(err, apperr.Validation) {
		t.Fatalf("err = %v, want Validation", err)
	}

	// Order is untouched after a rejected move.
	reloaded, err := svc.Get(ctx, userID, composite.Resume.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	for i, s := range reloaded.Sections {
		if s.ID != composite.Sections[i].ID {
			t.Fatal("rejected reorder changed the stored order")
		}
	}
}

func TestDeleteSectionClosesGap(t *testing.T) {
	db := newTestDB(t)
	svc := NewResumeService(db)
	ctx := context.Background()
	userID := seedUser(t, db, "alice")
	composite := seedResume(t, svc, userID)

	victim := composite.Sections[1]
	if err := svc.DeleteSection(ctx, userID, victim.ID); err != nil {
		t.Fatalf("delete section: %v", err)
	}

	reloaded, err := svc.Get(ctx, userID, composite.Resume.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(reloaded.Sections) != len(composite.Sections)-1 {
		t.Fatalf("section count = %d", len(reloaded.Sections))
	}
	for i, s := range reloaded.Sections {
		if s.OrderIndex != i {
			t.Fatalf("gap left behind: position %d has index %d", i, s.OrderIndex)
		}
		if s.ID == victim.ID {
			t.Fatal("deleted section still present")
		}
	}
}

func TestCreateSectionAppendsAtEnd(t *testing.T) {
	db := newTestDB(t)
	svc := NewResumeService(db)
	ctx := context.Background()
	userID := seedUser(t, db, "alice")
	composite := seedResume(t, svc, userID)

	section, err := svc.CreateSection(ctx, userID, composite.Resume.ID, SectionInput{
		Type:  resume.SectionCustom,
		Title: "Volunteering",
	})
	if err != nil {
		t.Fatalf("create section: %v", err)
	}
	if section.OrderIndex != len(composite.Sections) {
		t.Fatalf("order index = %d, want %d", section.OrderIndex, len(composite.Sections))
	}

	if _, err := svc.CreateSection(ctx, userID, composite.Resume.ID, SectionInput{Type: "sidebar", Title: "x"}); !apperr.IsKind(err, apperr.Validation) {
		t.Fatalf("unknown type err = %v, want Validation", err)
	}
}

func TestResumeOwnershipEnforced(t *testing.T) {
	db := newTestDB(t)
	svc := NewResumeService(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	composite := seedResume(t, svc, alice)

	if _, err := svc.Get(ctx, bob, composite.Resume.ID); !apperr.IsKind(err, apperr.NotFound) {
		t.Fatalf("cross-user get err = %v, want NotFound", err)
	}
	if err := svc.DeleteSection(ctx, bob, composite.Sections[0].ID); !apperr.IsKind(err, apperr.NotFound) {
		t.Fatalf("cross-user section delete err = %v, want NotFound", err)
	}
}

func TestExportCreateAndVersioning(t *testing.T) {
	db := newTestDB(t)
	resumes := NewResumeService(db)
	exports := NewExportService(db)
	ctx := context.Background()
	userID := seedUser(t, db, "alice")
	composite := seedResume(t, resumes, userID)

	first, err := exports.Create(ctx, userID, composite.Resume.ID)
	if err != nil {
		t.Fatalf("create export: %v", err)
	}
	if first.Version != 1 || first.Format != "pdf" {
		t.Fatalf("export = %+v", first)
	}
	if first.FilePath != "sample-resume-v1.pdf" {
		t.Fatalf("file path = %q", first.FilePath)
	}

	second, err := exports.Create(ctx, userID, composite.Resume.ID)
	if err != nil {
		t.Fatalf("second export: %v", err)
	}
	if second.Version != 2 {
		t.Fatalf("version = %d, want 2", second.Version)
	}
}

func TestExportCreateMissingResume(t *testing.T) {
	db := newTestDB(t)
	exports := NewExportService(db)
	userID := seedUser(t, db, "alice")

	_, err := exports.Create(context.Background(), userID, 4242)
	if !apperr.IsKind(err, apperr.NotFound) {
		t.Fatalf("err = %v, want NotFound", err)
	}
}

func TestExportGetScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	resumes := NewResumeService(db)
	exports := NewExportService(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	composite := seedResume(t, resumes, alice)

	export, err := exports.Create(ctx, alice, composite.Resume.ID)
	if err != nil {
		t.Fatalf("create export: %v", err)
	}
	if _, err := exports.Get(ctx, bob, export.ID); !apperr.IsKind(err, apperr.NotFound) {
		t.Fatalf("cross-user export get err = %v, want NotFound", err)
	}
	if _, err := exports.Get(ctx, alice, export.ID); err != nil {
		t.Fatalf("owner get: %v", err)
	}
}
