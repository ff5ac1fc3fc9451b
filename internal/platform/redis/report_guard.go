package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rgdevment/scam-scanner/internal/registry"
)

const reportKeyPrefix = "scamscan:report:"

// ReportGuard remembers reporter/number pairs for a fixed window.
type ReportGuard struct {
	client redis.Cmdable
	window time.Duration
}

func NewReportGuard(client redis.Cmdable, window time.Duration) *ReportGuard {
	return &ReportGuard{client: client, window: window}
}

// FirstReport claims the pair with SET NX. Numbers are keyed by their normalized form
// so formatting differences do not bypass the window.
func (g *ReportGuard) FirstReport(ctx context.Context, phoneNumber, reporterHash string) (bool, error) {
	ok, err := g.client.SetNX(ctx, reportKey(phoneNumber, reporterHash), time.Now().UTC().Unix(), g.window).Result()
	if err != nil {
		return false, fmt.Errorf("redis: claim report key: %w", err)
	}
	return ok, nil
}

// Release deletes the claim for the pair. Releasing an unclaimed pair is not an error.
func (g *ReportGuard) Release(ctx context.Context, phoneNumber, reporterHash string) error {
	if err := g.client.Del(ctx, reportKey(phoneNumber, reporterHash)).Err(); err != nil {
		return fmt.Errorf("redis: release report key: %w", err)
	}
	return nil
}

func reportKey(phoneNumber, reporterHash string) string {
	return reportKeyPrefix + registry.Normalize(phoneNumber) + ":" + reporterHash
}
