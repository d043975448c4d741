// Package journal records the advertisements posted by this client so their
// processing status can be followed up later.
package journal

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/donaldgifford/adposting/pkg/types"
)

// ErrNotFound is returned when no submission exists for a creation id.
var ErrNotFound = errors.New("submission not found")

// ErrMissingCreationID is returned when recording a submission without a creation id.
var ErrMissingCreationID = errors.New("submission has no creation id")

// Backend names accepted by Open.
const (
	BackendBolt     = "bbolt"
	BackendPostgres = "postgres"
	BackendNone     = "none"
)

// Store defines the journal persistence interface.
type Store interface {
	// Record inserts a submission or replaces the one with the same creation id.
	Record(ctx context.Context, s *domain.Submission) error
	Get(ctx context.Context, creationID string) (*domain.Submission, error)
	// List returns submissions newest first.
	List(ctx context.Context, f ListFilter) ([]domain.Submission, error)
	UpdateStatus(ctx context.Context, u *StatusUpdate) error
	Close() error
}

// ListFilter narrows List results. Zero values match everything.
type ListFilter struct {
	Status domain.ProcessingStatus
	Limit  int
}

func (f ListFilter) match(s *domain.Submission) bool {
	return f.Status == "" || s.ProcessingStatus == f.Status
}

// StatusUpdate carries the latest known state of a submission.
type StatusUpdate struct {
	CreationID       string
	ProcessingStatus domain.ProcessingStatus
	State            domain.AdvertisementState
	RequestID        string
}

// OpenOptions selects and configures a backend.
type OpenOptions struct {
	Backend string
	Path    string
	DSN     string
}

// Open returns the Store for the configured backend. The Postgres backend is
// migrated before it is returned.
func Open(ctx context.Context, opts OpenOptions) (Store, error) {
	switch opts.Backend {
	case BackendBolt:
		return NewBoltStore(opts.Path)
	case BackendPostgres:
		s, err := NewPostgresStore(ctx, opts.DSN)
		if err != nil {
			return nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("migrating journal: %w", err)
		}
		return s, nil
	case BackendNone, "":
		return NopStore{}, nil
	default:
		return nil, fmt.Errorf("unknown journal backend %q", opts.Backend)
	}
}

// stamp fills the timestamps of a submission about to be recorded.
func stamp(s *domain.Submission, now time.Time) {
	if s.SubmittedAt.IsZero() {
		s.SubmittedAt = now
	}
	s.UpdatedAt = now
}

// NopStore discards every submission. It is used when the journal is disabled.
type NopStore struct{}

// Record implements Store.
func (NopStore) Record(context.Context, *domain.Submission) error { return nil }

// Get implements Store. It always returns ErrNotFound.
func (NopStore) Get(context.Context, string) (*domain.Submission, error) { return nil, ErrNotFound }

// List implements Store.
func (NopStore) List(context.Context, ListFilter) ([]domain.Submission, error) { return nil, nil }

// UpdateStatus implements Store. It always returns ErrNotFound.
func (NopStore) UpdateStatus(context.Context, *StatusUpdate) error { return ErrNotFound }

// Close implements Store.
func (NopStore) Close() error { return nil }
