package worker

// ExportNotifyMessage is the WebSocket payload forwarded to the browser over
// Redis Pub/Sub. Field names match what the client parses.
type ExportNotifyMessage struct {
	Status        string `json:"status"`
	ExportID      uint   `json:"export_id"`
	ResumeID      uint   `json:"resume_id"`
	CorrelationID string `json:"correlation_id"`
	ErrorMessage  string `json:"error_message,omitempty"`
}
