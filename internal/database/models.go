package database

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"resumePress/internal/resume"
)

// Export lifecycle of a stored resume.
const (
	StatusDraft     = "draft"
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Resume is a stored document together with its latest export.
type Resume struct {
	gorm.Model
	Title      string         `gorm:"size:255"`
	Content    datatypes.JSON `gorm:"type:jsonb"`
	TemplateID string         `gorm:"size:64"`
	PdfKey     string         `gorm:"size:512"`
	Status     string         `gorm:"size:32;default:draft"`
	PageCount  int
}

// Document validates and decodes the stored JSON.
func (r *Resume) Document() (resume.Document, error) {
	doc, err := resume.Decode(r.Content)
	if err != nil {
		return resume.Document{}, fmt.Errorf("resume %d: %w", r.ID, err)
	}
	return doc, nil
}

func (r *Resume) SetDocument(doc resume.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode resume document: %w", err)
	}
	r.Content = datatypes.JSON(raw)
	return nil
}

// Migrate creates or updates every table the services use.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Resume{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
