package service

import (
	"context"

	"github.com/rgdevment/scam-scanner/internal/domain"
)

type Service interface {
	ListNumbers(ctx context.Context) []string

	IsScam(ctx context.Context, phoneNumber string) bool

	// Screen never fails: invalid input ends in a REJECTED screening.
	Screen(ctx context.Context, rawPhone string) *domain.Screening

	ReportNumber(ctx context.Context, rawPhone, rawReporter, comment string) error

	GetReports(ctx context.Context, rawPhone string) ([]*domain.Report, error)
}

// Metrics receives screening and reporting outcomes.
type Metrics interface {
	ObserveScreening(state domain.FlowState)
	ObserveReport(outcome string)
}

// Report outcomes passed to Metrics.ObserveReport.
const (
	ReportStored    = "stored"
	ReportDuplicate = "duplicate"
	ReportRejected  = "rejected"
	ReportFailed    = "failed"
)
