package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"jobvault/internal/apperr"
	"jobvault/internal/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(database.AllModels()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) uint {
	t.Helper()
	user := database.User{Username: username, PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user.ID
}

func TestJobCreateStampsDateSaved(t *testing.T) {
	db := newTestDB(t)
	svc := NewJobService(db)
	ctx := context.Background()
	userID := seedUser(t, db, "alice")

	job, err := svc.Create(ctx, userID, JobInput{Title: "Backend Engineer"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if job.DateSaved.IsZero() {
		t.Fatal("DateSaved must be stamped by the service")
	}
	if job.Status != database.JobStatusSaved {
		t.Fatalf("status = %q, want default saved", job.Status)
	}
}

func TestJobCreateRejectsUnknownStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewJobService(db)
	userID := seedUser(t, db, "alice")

	_, err := svc.Create(context.Background(), userID, JobInput{Title: "x", Status: "ghosted"})
	if !apperr.IsKind(err, apperr.Validation) {
		t.Fatalf("err = %v, want Validation", err)
	}
}

func TestJobOperationsRequireIdentity(t *testing.T) {
	db := newTestDB(t)
	svc := NewJobService(db)
	ctx := context.Background()

	if _, err := svc.List(ctx, 0); !apperr.IsKind(err, apperr.Unauthenticated) {
		t.Fatalf("list err = %v, want Unauthenticated", err)
	}
	if _, err := svc.Create(ctx, 0, JobInput{Title: "x"}); !apperr.IsKind(err, apperr.Unauthenticated) {
		t.Fatalf("create err = %v, want Unauthenticated", err)
	}
}

func TestJobListOrderedByCreationDesc(t *testing.T) {
	db := newTestDB(t)
	svc := NewJobService(db)
	ctx := context.Background()
	userID := seedUser(t, db, "alice")

	base := time.Now().UTC().Add(-time.Hour)
	titles := []string{"first", "second", "third"}
	for i, title := range titles {
		job := database.Job{
			UserID:    userID,
			Title:     title,
			Status:    database.JobStatusSaved,
			DateSaved: base,
		}
		job.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := db.Create(&job).Error; err != nil {
			t.Fatalf("seed job: %v", err)
		}
	}

	// Updating the oldest job must not move it to the front.
	var oldest database.Job
	if err := db.Where("title = ?", "first").First(&oldest).Error; err != nil {
		t.Fatalf("load oldest: %v", err)
	}
	if _, err := svc.Update(ctx, userID, oldest.ID, JobInput{Title: "first-renamed", Status: database.JobStatusApplied}); err != nil {
		t.Fatalf("update: %v", err)
	}

	jobs, err := svc.List(ctx, userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"third", "second", "first-renamed"}
	if len(jobs) != len(want) {
		t.Fatalf("len = %d", len(jobs))
	}
	for i, j := range jobs {
		if j.Title != want[i] {
			t.Fatalf("position %d = %q, want %q", i, j.Title, want[i])
		}
	}
}

func TestJobListScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewJobService(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	if _, err := svc.Create(ctx, alice, JobInput{Title: "alice job"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Get(ctx, bob, 1); !apperr.IsKind(err, apperr.NotFound) {
		t.Fatalf("cross-user get err = %v, want NotFound", err)
	}
	jobs, err := svc.List(ctx, bob)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(jobs) != 0 {
		t.Fatalf("bob sees %d jobs", len(jobs))
	}
}

func TestJobDeleteIsIdempotentSafe(t *testing.T) {
	db := newTestDB(t)
	svc := NewJobService(db)
	ctx := context.Background()
	userID := seedUser(t, db, "alice")

	job, err := svc.Create(ctx, userID, JobInput{Title: "to delete"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(ctx, userID, job.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	jobs, err := svc.List(ctx, userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(jobs) != 0 {
		t.Fatalf("job still listed after delete")
	}

	// Retrying after success surfaces NotFound without corrupting anything.
	if err := svc.Delete(ctx, userID, job.ID); !apperr.IsKind(err, apperr.NotFound) {
		t.Fatalf("second delete err = %v, want NotFound", err)
	}
	if jobs, err = svc.List(ctx, userID); err != nil || len(jobs) != 0 {
		t.Fatalf("list after retry: jobs=%d err=%v", len(jobs), err)
	}
}

func TestJobPipelineCountsSumToTotal(t *testing.T) {
	db := newTestDB(t)
	svc := NewJobService(db)
	ctx := context.Background()
	userID := seedUser(t, db, "alice")

	statuses := []string{
		database.JobStatusSaved,
		database.JobStatusApplied,
		database.JobStatusApplied,
		database.JobStatusInterview,
		database.JobStatusOffer,
	}
	for i, status := range statuses {
		if _, err := svc.Create(ctx, userID, JobInput{Title: fmt.Sprintf("job-%d", i), Status: status}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	summary, err := svc.Pipeline(ctx, userID)
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	if summary.Total != len(statuses) {
		t.Fatalf("total = %d, want %d", summary.Total, len(statuses))
	}
	sum := 0
	for _, b := range summary.Buckets {
		sum += b.Count
	}
	if sum != len(statuses) {
		t.Fatalf("bucket sum = %d, want %d", sum, len(statuses))
	}
}
