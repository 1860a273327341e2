package pipeline

import (
	"testing"

	"jobvault/internal/database"
)

func jobsWith(statuses ...string) []database.Job {
	out := make([]database.Job, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, database.Job{Status: s})
	}
	return out
}

func TestSummarizeCountsSumToTotal(t *testing.T) {
	jobs := jobsWith(
		database.JobStatusSaved,
		database.JobStatusApplied,
		database.JobStatusApplied,
		database.JobStatusInterview,
		database.JobStatusOffer,
		database.JobStatusRejected,
		database.JobStatusClosed,
	)

	s := Summarize(jobs)
	if s.Total != len(jobs) {
		t.Fatalf("total = %d, want %d", s.Total, len(jobs))
	}
	if len(s.Buckets) != 6 {
		t.Fatalf("bucket count = %d, want all six statuses", len(s.Buckets))
	}
	sum := 0
	for _, b := range s.Buckets {
		sum += b.Count
	}
	if sum != len(jobs) {
		t.Fatalf("bucket counts sum to %d, want %d", sum, len(jobs))
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Total != 0 {
		t.Fatalf("total = %d", s.Total)
	}
	if len(s.Buckets) != 6 {
		t.Fatalf("bucket count = %d, want six even when empty", len(s.Buckets))
	}
	for _, b := range s.Buckets {
		if b.Count != 0 || b.WidthClass != "w-0" {
			t.Fatalf("bucket %s = %+v, want zeroed", b.Status, b)
		}
	}
}

func TestSummarizeUnknownStatusCountsAsSaved(t *testing.T) {
	s := Summarize(jobsWith("archived-by-old-client"))
	for _, b := range s.Buckets {
		want := 0
		if b.Status == database.JobStatusSaved {
			want = 1
		}
		if b.Count != want {
			t.Fatalf("bucket %s count = %d, want %d", b.Status, b.Count, want)
		}
	}
}

func TestWidthClassQuartiles(t *testing.T) {
	tests := []struct {
		count, total int
		want         string
	}{
		{0, 10, "w-0"},
		{1, 10, "w-25"},
		{1, 4, "w-25"},
		{3, 10, "w-50"},
		{5, 10, "w-50"},
		{7, 10, "w-75"},
		{9, 10, "w-100"},
		{10, 10, "w-100"},
	}
	for _, tt := range tests {
		if got := widthClass(tt.count, tt.total); got != tt.want {
			t.Fatalf("widthClass(%d,%d) = %s, want %s", tt.count, tt.total, got, tt.want)
		}
	}
}
