// Package pipeline computes the status-pipeline summary shown above the jobs
// table: a count per status and a proportional bar width per status.
package pipeline

import (
	"jobvault/internal/database"
)

// Bucket is one status slot in the summary.
type Bucket struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
	// WidthClass buckets the status share into quartiles: "w-0" for empty,
	// then "w-25", "w-50", "w-75", "w-100".
	WidthClass string `json:"width_class"`
}

// Summary aggregates one user's jobs per status.
type Summary struct {
	Total   int      `json:"total"`
	Buckets []Bucket `json:"buckets"`
}

// Summarize tallies statuses over jobs. Every status of the closed set is
// present in the result, so counts always sum to len(jobs). Unknown statuses
// are counted under "saved" rather than dropped.
func Summarize(jobs []database.Job) Summary {
	statuses := database.JobStatuses()
	counts := make(map[string]int, len(statuses))
	known := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		known[s] = true
	}

	for _, j := range jobs {
		status := j.Status
		if !known[status] {
			status = database.JobStatusSaved
		}
		counts[status]++
	}

	buckets := make([]Bucket, 0, len(statuses))
	for _, s := range statuses {
		buckets = append(buckets, Bucket{
			Status:     s,
			Count:      counts[s],
			WidthClass: widthClass(counts[s], len(jobs)),
		})
	}

	return Summary{Total: len(jobs), Buckets: buckets}
}

func widthClass(count, total int) string {
	if count == 0 || total == 0 {
		return "w-0"
	}
	share := float64(count) / float64(total)
	switch {
	case share <= 0.25:
		return "w-25"
	case share <= 0.5:
		return "w-50"
	case share <= 0.75:
		return "w-75"
	default:
		return "w-100"
	}
}
