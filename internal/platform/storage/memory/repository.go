package memory

import (
	"context"
	"sync"

	"github.com/rgdevment/scam-scanner/internal/domain"
	"github.com/rgdevment/scam-scanner/internal/service"
)

// Repository keeps reports in process memory and serves a fixed scam list.
// Everything is lost on restart.
type Repository struct {
	mu      sync.RWMutex
	reports map[string][]*domain.Report
	numbers []string
}

var (
	_ service.Repository   = (*Repository)(nil)
	_ service.NumberSource = (*Repository)(nil)
)

// NewRepository serves numbers as the scam list, or the seed list when none are given.
func NewRepository(numbers ...string) *Repository {
	if len(numbers) == 0 {
		numbers = domain.SeedScamNumbers()
	}
	return &Repository{
		reports: make(map[string][]*domain.Report),
		numbers: append([]string(nil), numbers...),
	}
}

func (r *Repository) SaveReport(ctx context.Context, report *domain.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	copied := *report

	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports[report.PhoneNumber] = append(r.reports[report.PhoneNumber], &copied)
	return nil
}

func (r *Repository) GetReports(ctx context.Context, phoneNumber string) ([]*domain.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.reports[phoneNumber]
	out := make([]*domain.Report, 0, len(stored))
	for _, rep := range stored {
		copied := *rep
		out = append(out, &copied)
	}
	return out, nil
}

func (r *Repository) LoadScamNumbers(ctx context.Context) ([]string, error) {
	return append([]string(nil), r.numbers...), nil
}
