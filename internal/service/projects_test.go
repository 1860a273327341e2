package service

import (
	"context"
	"testing"

	"jobvault/internal/apperr"
	"jobvault/internal/database"
)

func TestProjectCreateDefaultsSourceToManual(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	userID := seedUser(t, db, "alice")

	project, err := svc.Create(context.Background(), userID, ProjectInput{Name: "tracker"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if project.Source != database.SourceManual {
		t.Fatalf("source = %q, want manual", project.Source)
	}
}

func TestProjectCreateRejectsUnknownSource(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	userID := seedUser(t, db, "alice")

	_, err := svc.Create(context.Background(), userID, ProjectInput{Name: "x", Source: "scraped"})
	if !apperr.IsKind(err, apperr.Validation) {
		t.Fatalf("err = %v, want Validation", err)
	}
}

func TestProjectListScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	if _, err := svc.Create(ctx, alice, ProjectInput{Name: "alice project"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	projects, err := svc.List(ctx, bob)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(projects) != 0 {
		t.Fatalf("bob sees %d projects", len(projects))
	}

	projects, err = svc.List(ctx, alice)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("alice sees %d projects, want 1", len(projects))
	}
}

func TestProjectUpdateNotFoundForMissingRow(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	userID := seedUser(t, db, "alice")

	_, err := svc.Update(context.Background(), userID, 9999, ProjectInput{Name: "renamed"})
	if !apperr.IsKind(err, apperr.NotFound) {
		t.Fatalf("err = %v, want NotFound", err)
	}
}
