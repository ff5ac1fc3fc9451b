package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/rgdevment/scam-scanner/internal/domain"
	"github.com/rgdevment/scam-scanner/internal/phone"
	"github.com/rgdevment/scam-scanner/internal/registry"
	"github.com/rgdevment/scam-scanner/internal/routing"
)

const (
	anonymousReporter = "anonymous"
	tracerName        = "github.com/rgdevment/scam-scanner/internal/service"
)

// screeningService is the concrete implementation of the Service interface.
type screeningService struct {
	lookup        registry.Lookup
	router        *routing.Router
	repo          Repository
	guard         ReportGuard
	logger        *zap.Logger
	metrics       Metrics
	tracer        trace.Tracer
	saltSecret    string
	defaultRegion string
}

type Option func(*screeningService)

func WithGuard(g ReportGuard) Option {
	return func(s *screeningService) { s.guard = g }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *screeningService) { s.logger = l }
}

func WithMetrics(m Metrics) Option {
	return func(s *screeningService) { s.metrics = m }
}

// WithSalt sets the HMAC key used to hash reporter identifiers.
func WithSalt(salt string) Option {
	return func(s *screeningService) { s.saltSecret = salt }
}

// WithDefaultRegion sets the region used to read numbers without a country code.
func WithDefaultRegion(region string) Option {
	return func(s *screeningService) { s.defaultRegion = region }
}

// WithTracerProvider replaces the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *screeningService) { s.tracer = tp.Tracer(tracerName) }
}

// NewScreeningService wires the router over lookup and the report write path over repo.
func NewScreeningService(lookup registry.Lookup, repo Repository, opts ...Option) Service {
	s := &screeningService{
		lookup:  lookup,
		router:  routing.NewRouter(lookup),
		repo:    repo,
		guard:   allowAll{},
		logger:  zap.NewNop(),
		metrics: noopMetrics{},
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *screeningService) ListNumbers(ctx context.Context) []string {
	return s.lookup.ListNumbers()
}

func (s *screeningService) IsScam(ctx context.Context, phoneNumber string) bool {
	return s.lookup.IsScam(phoneNumber)
}

func (s *screeningService) Screen(ctx context.Context, rawPhone string) *domain.Screening {
	_, span := s.tracer.Start(ctx, "service.Screen")
	defer span.End()

	result := s.router.Submit(rawPhone)

	span.SetAttributes(
		attribute.String("screening.state", string(result.State)),
		attribute.String("screening.decision", string(result.Decision)),
	)
	s.metrics.ObserveScreening(result.State)

	if result.State == domain.StateRejected {
		s.logger.Debug("screening rejected",
			zap.String("code", result.Code),
			zap.Int("input_len", len(rawPhone)),
		)
	} else {
		s.logger.Info("screening routed",
			zap.String("phone_number", result.PhoneNumber),
			zap.String("decision", string(result.Decision)),
		)
	}

	return &result
}

// ReportNumber validates and stores a report. The registry snapshot is not touched.
func (s *screeningService) ReportNumber(ctx context.Context, rawPhone, rawReporter, comment string) error {
	ctx, span := s.tracer.Start(ctx, "service.ReportNumber")
	defer span.End()

	if err := routing.ValidateFormat(rawPhone); err != nil {
		s.metrics.ObserveReport(ReportRejected)
		span.SetStatus(codes.Error, "invalid phone number")
		return err
	}

	phoneNumber := strings.TrimSpace(rawPhone)
	reporterHash := s.hashReporter(rawReporter)

	first, err := s.guard.FirstReport(ctx, phoneNumber, reporterHash)
	if err != nil {
		// Guard errors fall through to storing the report.
		s.logger.Warn("report guard unavailable", zap.Error(err))
		first = true
	}
	if !first {
		s.metrics.ObserveReport(ReportDuplicate)
		s.logger.Debug("duplicate report suppressed", zap.String("phone_number", phoneNumber))
		return nil
	}

	details := phone.Describe(phoneNumber, s.defaultRegion)
	report := domain.NewReport(phoneNumber, details.E164, details.Region, reporterHash, strings.TrimSpace(comment))

	if err := s.repo.SaveReport(ctx, report); err != nil {
		// Nothing was stored, so a retry must not count as a duplicate.
		if relErr := s.guard.Release(ctx, phoneNumber, reporterHash); relErr != nil {
			s.logger.Warn("report guard release failed", zap.Error(relErr))
		}
		s.metrics.ObserveReport(ReportFailed)
		span.RecordError(err)
		span.SetStatus(codes.Error, "save report")
		return fmt.Errorf("save report: %w", err)
	}

	s.metrics.ObserveReport(ReportStored)
	s.logger.Info("report stored",
		zap.String("report_id", report.ID.String()),
		zap.String("phone_number", phoneNumber),
		zap.String("region", report.Region),
		zap.Bool("listed", s.lookup.IsScam(phoneNumber)),
	)
	return nil
}

func (s *screeningService) GetReports(ctx context.Context, rawPhone string) ([]*domain.Report, error) {
	reports, err := s.repo.GetReports(ctx, strings.TrimSpace(rawPhone))
	if err != nil {
		return nil, fmt.Errorf("get reports: %w", err)
	}
	return reports, nil
}

func (s *screeningService) hashReporter(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = anonymousReporter
	}
	mac := hmac.New(sha256.New, []byte(s.saltSecret))
	mac.Write([]byte(raw))
	return hex.EncodeToString(mac.Sum(nil))
}

type allowAll struct{}

func (allowAll) FirstReport(context.Context, string, string) (bool, error) { return true, nil }
func (allowAll) Release(context.Context, string, string) error { return nil }

type noopMetrics struct{}

func (noopMetrics) ObserveScreening(domain.FlowState) {}
func (noopMetrics) ObserveReport(string)             {}
