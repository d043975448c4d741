package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	bolt "go.etcd.io/bbolt"

	domain "github.com/donaldgifford/adposting/pkg/types"
)

var submissionsBucket = []byte("submissions")

var errBucketMissing = errors.New("submissions bucket missing")

// BoltStore implements Store in a local bbolt file. Submissions are stored as
// JSON keyed by creation id.
type BoltStore struct {
	db      *bolt.DB
	nowFunc func() time.Time
}

// BoltOption configures a BoltStore.
type BoltOption func(*BoltStore)

// WithBoltNowFunc overrides the time function for testing.
func WithBoltNowFunc(f func() time.Time) BoltOption {
	return func(s *BoltStore) {
		s.nowFunc = f
	}
}

// NewBoltStore opens or creates the journal file at path.
func NewBoltStore(path string, opts ...BoltOption) (*BoltStore, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating journal directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", path, err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(submissionsBucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing journal bucket: %w", err)
	}

	s := &BoltStore{db: db, nowFunc: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close implements Store.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Record implements Store.
func (s *BoltStore) Record(_ context.Context, sub *domain.Submission) error {
	if sub.CreationID == "" {
		return ErrMissingCreationID
	}
	now := s.nowFunc().UTC()

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(submissionsBucket)
		if b == nil {
			return errBucketMissing
		}

		// Keep the original submission time on re-record.
		if prev := b.Get([]byte(sub.CreationID)); prev != nil && sub.SubmittedAt.IsZero() {
			var existing domain.Submission
			if err := json.Unmarshal(prev, &existing); err == nil {
				sub.SubmittedAt = existing.SubmittedAt
			}
		}
		stamp(sub, now)

		return putSubmission(b, sub)
	})
}

// Get implements Store.
func (s *BoltStore) Get(_ context.Context, creationID string) (*domain.Submission, error) {
	var sub domain.Submission
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(submissionsBucket)
		if b == nil {
			return errBucketMissing
		}
		v := b.Get([]byte(creationID))
		if v == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &sub)
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// List implements Store.
func (s *BoltStore) List(_ context.Context, f ListFilter) ([]domain.Submission, error) {
	var out []domain.Submission
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(submissionsBucket)
		if b == nil {
			return errBucketMissing
		}
		return b.ForEach(func(k, v []byte) error {
			var sub domain.Submission
			if err := json.Unmarshal(v, &sub); err != nil {
				return fmt.Errorf("decoding submission %s: %w", k, err)
			}
			if f.match(&sub) {
				out = append(out, sub)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(out, func(a, b domain.Submission) int {
		if c := b.SubmittedAt.Compare(a.SubmittedAt); c != 0 {
			return c
		}
		if a.CreationID < b.CreationID {
			return -1
		}
		if a.CreationID > b.CreationID {
			return 1
		}
		return 0
	})

	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

// UpdateStatus implements Store.
func (s *BoltStore) UpdateStatus(_ context.Context, u *StatusUpdate) error {
	now := s.nowFunc().UTC()

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(submissionsBucket)
		if b == nil {
			return errBucketMissing
		}
		v := b.Get([]byte(u.CreationID))
		if v == nil {
			return ErrNotFound
		}

		var sub domain.Submission
		if err := json.Unmarshal(v, &sub); err != nil {
			return fmt.Errorf("decoding submission %s: %w", u.CreationID, err)
		}

		sub.ProcessingStatus = u.ProcessingStatus
		if u.State != "" {
			sub.State = u.State
		}
		if u.RequestID != "" {
			sub.LastRequestID = u.RequestID
		}
		sub.UpdatedAt = now

		return putSubmission(b, &sub)
	})
}

func putSubmission(b *bolt.Bucket, sub *domain.Submission) error {
	v, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("encoding submission %s: %w", sub.CreationID, err)
	}
	return b.Put([]byte(sub.CreationID), v)
}
