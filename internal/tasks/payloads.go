package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Task type constants shared by the queue producer and consumer.
const (
	TypeExportGenerate = "export:generate"
)

// ExportGeneratePayload carries the minimum needed to render one export.
type ExportGeneratePayload struct {
	ExportID      uint   `json:"export_id"`
	CorrelationID string `json:"correlation_id"`
}

// NewExportGenerateTask builds a resume export task.
func NewExportGenerateTask(exportID uint, correlationID string) (*asynq.Task, error) {
	payload, err := json.Marshal(ExportGeneratePayload{
		ExportID:      exportID,
		CorrelationID: correlationID,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeExportGenerate, payload), nil
}
