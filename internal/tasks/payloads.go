package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// Task types shared by the API producer and the worker.
const (
	TypePDFExport = "pdf:export"
)

// PDFExportPayload identifies the resume to export and how.
type PDFExportPayload struct {
	ResumeID      uint   `json:"resume_id"`
	CorrelationID string `json:"correlation_id"`
	TemplateID    string `json:"template_id"`
}

// NewPDFExportTask builds a resume export task.
func NewPDFExportTask(id uint, correlationID, templateID string) (*asynq.Task, error) {
	payload, err := json.Marshal(PDFExportPayload{
		ResumeID:      id,
		CorrelationID: correlationID,
		TemplateID:    templateID,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypePDFExport, payload), nil
}

// NotifyChannel is the redis pub/sub channel carrying export progress for
// one resume.
func NotifyChannel(resumeID uint) string {
	return fmt.Sprintf("resume_notify:%d", resumeID)
}
