package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rgdevment/scam-scanner/internal/domain"
	"github.com/rgdevment/scam-scanner/internal/platform/redis"
	"github.com/rgdevment/scam-scanner/internal/registry"
	"github.com/rgdevment/scam-scanner/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap/zaptest"
)

type MockRepo struct {
	reports   []*domain.Report
	saveErr   error
	failSaves int
}

func NewMockRepo() *MockRepo {
	return &MockRepo{reports: []*domain.Report{}}
}

func (m *MockRepo) SaveReport(ctx context.Context, r *domain.Report) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if m.failSaves > 0 {
		m.failSaves--
		return errors.New("scylla timeout")
	}
	m.reports = append(m.reports, r)
	return nil
}

func (m *MockRepo) GetReports(ctx context.Context, phone string) ([]*domain.Report, error) {
	var result []*domain.Report
	for _, r := range m.reports {
		if r.PhoneNumber == phone {
			result = append(result, r)
		}
	}
	return result, nil
}

type MockGuard struct {
	seen     map[string]bool
	err      error
	released int
}

func (g *MockGuard) FirstReport(ctx context.Context, phone, hash string) (bool, error) {
	if g.err != nil {
		return false, g.err
	}
	key := phone + "|" + hash
	if g.seen[key] {
		return false, nil
	}
	g.seen[key] = true
	return true, nil
}

func (g *MockGuard) Release(ctx context.Context, phone, hash string) error {
	delete(g.seen, phone+"|"+hash)
	g.released++
	return nil
}

type MockMetrics struct {
	screenings map[domain.FlowState]int
	reports    map[string]int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		screenings: map[domain.FlowState]int{},
		reports:    map[string]int{},
	}
}

func (m *MockMetrics) ObserveScreening(state domain.FlowState) { m.screenings[state]++ }
func (m *MockMetrics) ObserveReport(outcome string)           { m.reports[outcome]++ }

func newService(t *testing.T, repo service.Repository, opts ...service.Option) service.Service {
	opts = append([]service.Option{
		service.WithLogger(zaptest.NewLogger(t)),
		service.WithSalt("secret_salt"),
	}, opts...)
	return service.NewScreeningService(registry.Default(), repo, opts...)
}

func TestScreen(t *testing.T) {
	metrics := NewMockMetrics()
	svc := newService(t, NewMockRepo(), service.WithMetrics(metrics))
	ctx := context.Background()

	scam := svc.Screen(ctx, "+6291112345678")
	assert.Equal(t, domain.StateRoutingScam, scam.State)
	assert.Equal(t, domain.DecisionScam, scam.Decision)

	safe := svc.Screen(ctx, "+1 650 555 1212")
	assert.Equal(t, domain.StateRoutingSafe, safe.State)
	assert.Equal(t, domain.DecisionSafe, safe.Decision)

	rejected := svc.Screen(ctx, "")
	assert.Equal(t, domain.StateRejected, rejected.State)
	assert.Equal(t, domain.ErrBlankInput.Code, rejected.Code)

	assert.Equal(t, 1, metrics.screenings[domain.StateRoutingScam])
	assert.Equal(t, 1, metrics.screenings[domain.StateRoutingSafe])
	assert.Equal(t, 1, metrics.screenings[domain.StateRejected])
}

func TestIsScamAndList(t *testing.T) {
	svc := newService(t, NewMockRepo())
	ctx := context.Background()

	assert.True(t, svc.IsScam(ctx, "+62 (542) 1234-5678"))
	assert.False(t, svc.IsScam(ctx, ""))
	assert.ElementsMatch(t, domain.SeedScamNumbers(), svc.ListNumbers(ctx))
}

func TestReportNumber(t *testing.T) {
	cases := []struct {
		Name        string
		Phone       string
		Reporter    string
		ExpectedErr error
	}{
		{"valid report", " +1 650 555 1212 ", "user_A", nil},
		{"anonymous reporter", "+56912345678", "", nil},
		{"blank phone", "   ", "user_A", domain.ErrBlankInput},
		{"bad phone", "not a number", "user_A", domain.ErrInvalidFormat},
		{"too many digits", "+1234567890123456", "user_A", domain.ErrInvalidFormat},
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			repo := NewMockRepo()
			metrics := NewMockMetrics()
			svc := newService(t, repo, service.WithMetrics(metrics))

			err := svc.ReportNumber(context.Background(), tc.Phone, tc.Reporter, "  called about a parcel  ")

			if tc.ExpectedErr != nil {
				require.ErrorIs(t, err, tc.ExpectedErr)
				assert.Empty(t, repo.reports)
				assert.Equal(t, 1, metrics.reports[service.ReportRejected])
				return
			}

			require.NoError(t, err)
			require.Len(t, repo.reports, 1)
			stored := repo.reports[0]
			assert.Equal(t, strings.TrimSpace(tc.Phone), stored.PhoneNumber)
			assert.Equal(t, "called about a parcel", stored.Comment)
			assert.Len(t, stored.ReporterHash, 64)
			assert.NotEqual(t, uuid.Nil, stored.ID)
			assert.Equal(t, 1, metrics.reports[service.ReportStored])
		})
	}
}

func TestReportNumberEnrichesMetadata(t *testing.T) {
	repo := NewMockRepo()
	svc := newService(t, repo)

	require.NoError(t, svc.ReportNumber(context.Background(), "+1 650-253-0000", "user_A", ""))

	require.Len(t, repo.reports, 1)
	assert.Equal(t, "+1 650-253-0000", repo.reports[0].PhoneNumber)
	assert.Equal(t, "+16502530000", repo.reports[0].E164)
	assert.Equal(t, "US", repo.reports[0].Region)
}

func TestReportNumberHashesReporter(t *testing.T) {
	repo := NewMockRepo()
	svc := newService(t, repo)
	ctx := context.Background()

	require.NoError(t, svc.ReportNumber(ctx, "+1 650 555 1212", "user_A", ""))
	require.NoError(t, svc.ReportNumber(ctx, "+1 650 555 1213", "user_A", ""))
	require.NoError(t, svc.ReportNumber(ctx, "+1 650 555 1214", "user_B", ""))

	require.Len(t, repo.reports, 3)
	assert.Equal(t, repo.reports[0].ReporterHash, repo.reports[1].ReporterHash)
	assert.NotEqual(t, repo.reports[0].ReporterHash, repo.reports[2].ReporterHash)
	assert.NotEqual(t, "user_A", repo.reports[0].ReporterHash)

	other := NewMockRepo()
	salted := service.NewScreeningService(registry.Default(), other, service.WithSalt("other_salt"))
	require.NoError(t, salted.ReportNumber(ctx, "+1 650 555 1212", "user_A", ""))
	assert.NotEqual(t, repo.reports[0].ReporterHash, other.reports[0].ReporterHash)
}

func TestReportNumberDeduplicates(t *testing.T) {
	repo := NewMockRepo()
	metrics := NewMockMetrics()
	guard := &MockGuard{seen: map[string]bool{}}
	svc := newService(t, repo, service.WithGuard(guard), service.WithMetrics(metrics))
	ctx := context.Background()

	require.NoError(t, svc.ReportNumber(ctx, "+1 650 555 1212", "user_A", ""))
	require.NoError(t, svc.ReportNumber(ctx, "+1 650 555 1212", "user_A", "again"))
	require.NoError(t, svc.ReportNumber(ctx, "+1 650 555 1212", "user_B", ""))

	reports, err := svc.GetReports(ctx, "+1 650 555 1212")
	require.NoError(t, err)
	assert.Len(t, reports, 2)
	assert.Equal(t, 2, metrics.reports[service.ReportStored])
	assert.Equal(t, 1, metrics.reports[service.ReportDuplicate])
}

func TestReportNumberGuardFailureStillStores(t *testing.T) {
	repo := NewMockRepo()
	guard := &MockGuard{err: errors.New("redis down")}
	svc := newService(t, repo, service.WithGuard(guard))

	require.NoError(t, svc.ReportNumber(context.Background(), "+1 650 555 1212", "user_A", ""))
	assert.Len(t, repo.reports, 1)
}

func TestReportNumberSaveFailure(t *testing.T) {
	repo := NewMockRepo()
	repo.saveErr = errors.New("scylla timeout")
	metrics := NewMockMetrics()
	svc := newService(t, repo, service.WithMetrics(metrics))

	err := svc.ReportNumber(context.Background(), "+1 650 555 1212", "user_A", "")

	require.Error(t, err)
	assert.ErrorIs(t, err, repo.saveErr)
	assert.Equal(t, 1, metrics.reports[service.ReportFailed])
}

func TestReportNumberRetryAfterSaveFailure(t *testing.T) {
	repo := NewMockRepo()
	repo.failSaves = 1
	metrics := NewMockMetrics()
	guard := &MockGuard{seen: map[string]bool{}}
	svc := newService(t, repo, service.WithGuard(guard), service.WithMetrics(metrics))
	ctx := context.Background()

	err := svc.ReportNumber(ctx, "+1 650 555 1212", "user_A", "fake bank")
	require.Error(t, err)
	assert.Equal(t, 1, guard.released)

	require.NoError(t, svc.ReportNumber(ctx, "+1 650 555 1212", "user_A", "fake bank"))

	reports, err := svc.GetReports(ctx, "+1 650 555 1212")
	require.NoError(t, err)
	assert.Len(t, reports, 1)
	assert.Equal(t, 1, metrics.reports[service.ReportFailed])
	assert.Equal(t, 1, metrics.reports[service.ReportStored])
	assert.Zero(t, metrics.reports[service.ReportDuplicate])
}

func TestReportNumberRetryWithRedisGuard(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	repo := NewMockRepo()
	repo.failSaves = 1
	guard := redis.NewReportGuard(client, time.Hour)
	svc := newService(t, repo, service.WithGuard(guard))
	ctx := context.Background()

	require.Error(t, svc.ReportNumber(ctx, "+1 650 555 1212", "user_A", ""))
	assert.Empty(t, mr.Keys())

	require.NoError(t, svc.ReportNumber(ctx, "+1 650 555 1212", "user_A", ""))
	require.NoError(t, svc.ReportNumber(ctx, "+1 650 555 1212", "user_A", ""))

	reports, err := svc.GetReports(ctx, "+1 650 555 1212")
	require.NoError(t, err)
	assert.Len(t, reports, 1)
}

func TestReportNumberLeavesRegistryUnchanged(t *testing.T) {
	svc := newService(t, NewMockRepo())
	ctx := context.Background()
	before := svc.ListNumbers(ctx)

	require.NoError(t, svc.ReportNumber(ctx, "+1 650 555 1212", "user_A", "scam"))

	assert.Equal(t, before, svc.ListNumbers(ctx))
	assert.False(t, svc.IsScam(ctx, "+1 650 555 1212"))
	assert.Equal(t, domain.DecisionSafe, svc.Screen(ctx, "+1 650 555 1212").Decision)
}

func TestScreenRecordsSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	svc := newService(t, NewMockRepo(), service.WithTracerProvider(tp))

	svc.Screen(context.Background(), "+6291112345678")

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "service.Screen", spans[0].Name())

	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, string(domain.StateRoutingScam), attrs["screening.state"])
	assert.Equal(t, string(domain.DecisionScam), attrs["screening.decision"])
}
