package worker

// ExportNotifyMessage is published on tasks.NotifyChannel and forwarded to
// websocket clients as-is.
type ExportNotifyMessage struct {
	Status        string `json:"status"`
	ResumeID      uint   `json:"resume_id"`
	CorrelationID string `json:"correlation_id"`
	PageCount     int    `json:"page_count,omitempty"`
	ErrorCode     int    `json:"error_code"`
	ErrorMessage  string `json:"error_message"`
}
