package scylla

import (
	"context"
	"fmt"
	"time"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rgdevment/scam-scanner/internal/domain"
	"github.com/rgdevment/scam-scanner/internal/service"
)

// reportTTLSeconds keeps raw reports for 18 months.
const reportTTLSeconds = 47304000

type scyllaRepository struct {
	session *gocql.Session
}

// Repository is satisfied by the Scylla-backed store.
type Repository interface {
	service.Repository
	service.NumberSource
}

func NewScyllaRepository(session *gocql.Session) Repository {
	return &scyllaRepository{
		session: session,
	}
}

func Connect(logger *zap.Logger, keyspace string, hosts ...string) (*gocql.Session, error) {
	cluster := gocql.NewCluster(hosts...)
	cluster.Keyspace = keyspace
	cluster.Consistency = gocql.Quorum
	cluster.ProtoVersion = 4
	cluster.Timeout = 5 * time.Second
	cluster.ConnectTimeout = 5 * time.Second

	session, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to scylla: %w", err)
	}

	logger.Info("connected to scylla", zap.Strings("hosts", hosts), zap.String("keyspace", keyspace))
	return session, nil
}

func (r *scyllaRepository) SaveReport(ctx context.Context, report *domain.Report) error {
	query := `
        INSERT INTO reports (phone_number, id, e164, region, reporter_hash, comment, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?) USING TTL ?`

	err := r.session.Query(query,
		report.PhoneNumber,
		gocql.UUID(report.ID),
		report.E164,
		report.Region,
		report.ReporterHash,
		report.Comment,
		report.CreatedAt,
		reportTTLSeconds,
	).WithContext(ctx).Exec()

	if err != nil {
		return fmt.Errorf("scylla: failed to save report: %w", err)
	}

	return nil
}

func (r *scyllaRepository) GetReports(ctx context.Context, phoneNumber string) ([]*domain.Report, error) {
	query := `SELECT id, phone_number, e164, region, reporter_hash, comment, created_at
	          FROM reports WHERE phone_number = ?`

	iter := r.session.Query(query, phoneNumber).WithContext(ctx).Iter()

	var reports []*domain.Report
	var id gocql.UUID
	var phone, e164, region, hash, comment string
	var createdAt time.Time

	for iter.Scan(&id, &phone, &e164, &region, &hash, &comment, &createdAt) {
		reports = append(reports, reportFromRow(id, phone, e164, region, hash, comment, createdAt))
	}

	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("scylla: failed to iterate reports: %w", err)
	}

	return reports, nil
}

// reportFromRow converts a scanned row. Both UUID types are [16]byte.
func reportFromRow(id gocql.UUID, phone, e164, region, hash, comment string, createdAt time.Time) *domain.Report {
	return &domain.Report{
		ID:           uuid.UUID(id),
		PhoneNumber:  phone,
		E164:         e164,
		Region:       region,
		ReporterHash: hash,
		Comment:      comment,
		CreatedAt:    createdAt,
	}
}

// LoadScamNumbers reads the curated list. Rows are stored as entered.
func (r *scyllaRepository) LoadScamNumbers(ctx context.Context) ([]string, error) {
	iter := r.session.Query(`SELECT phone_number FROM scam_numbers`).WithContext(ctx).Iter()

	var numbers []string
	var phone string
	for iter.Scan(&phone) {
		numbers = append(numbers, phone)
	}

	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("scylla: failed to load scam numbers: %w", err)
	}

	return numbers, nil
}
