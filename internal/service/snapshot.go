package service

import (
	"context"
	"fmt"

	"github.com/rgdevment/scam-scanner/internal/registry"
)

// LoadRegistry builds an immutable snapshot from src plus any extra numbers.
// The snapshot is taken once; later changes in src are not observed.
func LoadRegistry(ctx context.Context, src NumberSource, extra ...string) (*registry.Registry, error) {
	numbers, err := src.LoadScamNumbers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load scam numbers: %w", err)
	}
	return registry.New(append(numbers, extra...)...), nil
}
