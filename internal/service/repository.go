package service

import (
	"context"

	"github.com/rgdevment/scam-scanner/internal/domain"
)

// Repository is the durable write side for user reports.
type Repository interface {
	SaveReport(ctx context.Context, r *domain.Report) error

	GetReports(ctx context.Context, phoneNumber string) ([]*domain.Report, error)
}

// NumberSource supplies the scam list a registry snapshot is built from.
type NumberSource interface {
	LoadScamNumbers(ctx context.Context) ([]string, error)
}

// ReportGuard suppresses repeated reports of one number by one reporter.
type ReportGuard interface {
	// FirstReport returns true when no report for this pair was seen in the current window.
	FirstReport(ctx context.Context, phoneNumber, reporterHash string) (bool, error)

	// Release drops a claim made by FirstReport so the pair can be reported again.
	Release(ctx context.Context, phoneNumber, reporterHash string) error
}
