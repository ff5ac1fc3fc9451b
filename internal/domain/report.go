package domain

import (
	"time"

	"github.com/google/uuid"
)

// Report is a user's claim that a number is a scam.
// Reports are evidence only. They never change the registry snapshot a running
// process screens against; promotion into the scam list happens out of band.
type Report struct {
	ID          uuid.UUID `json:"id" db:"id"`
	PhoneNumber string    `json:"phone_number" db:"phone_number"` // trimmed, as submitted
	E164        string    `json:"e164,omitempty" db:"e164"`
	Region      string    `json:"region,omitempty" db:"region"` // ISO 3166-1 alpha-2, empty if unknown

	// ReporterHash is the HMAC-SHA256 of the reporter identifier.
	// The raw identifier is never stored.
	ReporterHash string `json:"reporter_hash" db:"reporter_hash"`

	Comment   string    `json:"comment,omitempty" db:"comment"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewReport is a factory to create a clean report instance.
// Note: It expects the ReporterHash to be already calculated by the caller (Service layer).
func NewReport(phone, e164, region, reporterHash, comment string) *Report {
	return &Report{
		ID:           uuid.New(),
		PhoneNumber:  phone,
		E164:         e164,
		Region:       region,
		ReporterHash: reporterHash,
		Comment:      comment,
		CreatedAt:    time.Now().UTC(),
	}
}
