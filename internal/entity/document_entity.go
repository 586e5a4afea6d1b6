package entity

import (
	"time"

	"github.com/google/uuid"
)

// Document is an uploaded salary slip or employment letter attached to a
// conversation, with OCR extraction state.
type Document struct {
	Id             uuid.UUID
	ConversationId uuid.UUID
	FilePath       string
	MimeType       string
	OcrStatus      string // PENDING | PROCESSING | COMPLETED | FAILED
	OcrResult      *SlipFields
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

// SlipFields are the structured fields extracted from a salary slip.
type SlipFields struct {
	Name           string  `json:"name"`
	Employer       string  `json:"employer"`
	EmploymentType string  `json:"employment_type"`
	MonthlySalary  float64 `json:"monthly_salary"`
	DocumentValid  bool    `json:"document_valid"`
}
