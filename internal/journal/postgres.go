package journal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/donaldgifford/adposting/pkg/types"
)

const defaultPoolSize = 4

// PostgresStore implements Store on a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to Postgres and verifies the connection.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = defaultPoolSize

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close shuts down the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// Record implements Store.
func (s *PostgresStore) Record(ctx context.Context, sub *domain.Submission) error {
	if sub.CreationID == "" {
		return ErrMissingCreationID
	}
	stamp(sub, time.Now().UTC())

	args := pgx.NamedArgs{
		"creation_id":       sub.CreationID,
		"advertisement_id":  advertisementID(sub.AdvertisementID),
		"location":          sub.Location,
		"job_title":         sub.JobTitle,
		"processing_status": string(sub.ProcessingStatus),
		"state":             string(sub.State),
		"last_request_id":   sub.LastRequestID,
		"submitted_at":      sub.SubmittedAt,
		"updated_at":        sub.UpdatedAt,
	}

	if err := s.pool.QueryRow(ctx, queryRecordSubmission, args).Scan(&sub.SubmittedAt); err != nil {
		return fmt.Errorf("recording submission %s: %w", sub.CreationID, err)
	}
	return nil
}

// Get implements Store.
func (s *PostgresStore) Get(ctx context.Context, creationID string) (*domain.Submission, error) {
	sub, err := scanSubmission(s.pool.QueryRow(ctx, queryGetSubmission, creationID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting submission %s: %w", creationID, err)
	}
	return sub, nil
}

// List implements Store.
func (s *PostgresStore) List(ctx context.Context, f ListFilter) ([]domain.Submission, error) {
	var limit any
	if f.Limit > 0 {
		limit = f.Limit
	}

	rows, err := s.pool.Query(ctx, queryListSubmissions, string(f.Status), limit)
	if err != nil {
		return nil, fmt.Errorf("listing submissions: %w", err)
	}
	defer rows.Close()

	var out []domain.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning submission: %w", err)
		}
		out = append(out, *sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating submissions: %w", err)
	}
	return out, nil
}

// UpdateStatus implements Store.
func (s *PostgresStore) UpdateStatus(ctx context.Context, u *StatusUpdate) error {
	tag, err := s.pool.Exec(ctx, queryUpdateStatus, pgx.NamedArgs{
		"creation_id":       u.CreationID,
		"processing_status": string(u.ProcessingStatus),
		"state":             string(u.State),
		"request_id":        u.RequestID,
	})
	if err != nil {
		return fmt.Errorf("updating submission %s: %w", u.CreationID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanSubmission(row pgx.Row) (*domain.Submission, error) {
	var (
		sub    domain.Submission
		adID   string
		status string
		state  string
	)
	if err := row.Scan(
		&sub.CreationID, &adID, &sub.Location, &sub.JobTitle,
		&status, &state, &sub.LastRequestID,
		&sub.SubmittedAt, &sub.UpdatedAt,
	); err != nil {
		return nil, err
	}

	sub.ProcessingStatus = domain.ProcessingStatus(status)
	sub.State = domain.AdvertisementState(state)
	if adID != "" {
		id, err := uuid.Parse(adID)
		if err != nil {
			return nil, fmt.Errorf("parsing advertisement id %q: %w", adID, err)
		}
		sub.AdvertisementID = id
	}
	return &sub, nil
}

func advertisementID(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}
