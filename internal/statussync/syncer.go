// Package statussync follows up the processing status of journaled
// advertisements. Each run issues at most one GET per pending submission;
// repeated runs are driven by the Scheduler.
package statussync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/donaldgifford/adposting/internal/adposting"
	"github.com/donaldgifford/adposting/internal/journal"
	"github.com/donaldgifford/adposting/internal/metrics"
	"github.com/donaldgifford/adposting/internal/notify"
	domain "github.com/donaldgifford/adposting/pkg/types"
)

// Summary reports the outcome of one run.
type Summary struct {
	Checked     int
	Transitions []notify.StatusChange
	Failed      int
}

// RequestIDSource reports the X-Request-Id of the last response the client
// received. *adposting.RequestIDRecorder satisfies it.
type RequestIDSource interface {
	Last() string
}

// Syncer refreshes pending submissions through the client.
type Syncer struct {
	store    journal.Store
	client   adposting.AdvertisementClient
	notifier notify.Notifier
	reqIDs   RequestIDSource
	log      *slog.Logger
	limit    int
	stagger  time.Duration
}

// Option configures a Syncer.
type Option func(*Syncer)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Syncer) {
		s.log = l
	}
}

// WithLimit caps the number of submissions checked per run. Zero checks all.
func WithLimit(n int) Option {
	return func(s *Syncer) {
		s.limit = n
	}
}

// WithStagger sets the delay between consecutive GETs within a run.
func WithStagger(d time.Duration) Option {
	return func(s *Syncer) {
		s.stagger = d
	}
}

// WithRequestIDs records the request id of each status GET in the journal.
// It must observe the same transport the client sends through.
func WithRequestIDs(src RequestIDSource) Option {
	return func(s *Syncer) {
		s.reqIDs = src
	}
}

// NewSyncer creates a Syncer with injected dependencies.
func NewSyncer(
	store journal.Store,
	client adposting.AdvertisementClient,
	n notify.Notifier,
	opts ...Option,
) *Syncer {
	s := &Syncer{
		store:    store,
		client:   client,
		notifier: n,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run checks every Pending submission once, records the latest status and
// notifies about submissions that left Pending.
func (s *Syncer) Run(ctx context.Context) (*Summary, error) {
	metrics.SyncRunsTotal.Inc()

	pending, err := s.store.List(ctx, journal.ListFilter{
		Status: domain.ProcessingPending,
		Limit:  s.limit,
	})
	if err != nil {
		return nil, fmt.Errorf("listing pending submissions: %w", err)
	}

	sum := &Summary{}
	for i := range pending {
		if ctx.Err() != nil {
			return sum, ctx.Err()
		}
		if i > 0 && s.stagger > 0 {
			select {
			case <-ctx.Done():
				return sum, ctx.Err()
			case <-time.After(s.stagger):
			}
		}

		sub := &pending[i]
		change, err := s.refresh(ctx, sub)
		if err != nil {
			if errors.Is(err, adposting.ErrDailyLimitReached) {
				s.log.Warn("daily API limit reached, stopping status sync",
					"checked", sum.Checked,
				)
				break
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return sum, err
			}
			sum.Checked++
			s.log.Error("refreshing submission failed",
				"creation_id", sub.CreationID,
				"kind", adposting.KindOf(err),
				"request_id", adposting.RequestIDOf(err),
				"error", err,
			)
			metrics.SyncErrorsTotal.Inc()
			sum.Failed++
			continue
		}
		sum.Checked++
		if change != nil {
			sum.Transitions = append(sum.Transitions, *change)
		}
	}

	s.notify(ctx, sum.Transitions)

	s.log.Info("status sync complete",
		"checked", sum.Checked,
		"transitions", len(sum.Transitions),
		"failed", sum.Failed,
	)
	return sum, nil
}

func (s *Syncer) refresh(ctx context.Context, sub *domain.Submission) (*notify.StatusChange, error) {
	res, err := s.client.GetAdvertisement(ctx, sub.Location)
	if err != nil {
		return nil, err
	}

	requestID := sub.LastRequestID
	if s.reqIDs != nil {
		if id := s.reqIDs.Last(); id != "" {
			requestID = id
		}
	}

	if err := s.store.UpdateStatus(ctx, &journal.StatusUpdate{
		CreationID:       sub.CreationID,
		ProcessingStatus: res.ProcessingStatus,
		State:            res.State,
		RequestID:        requestID,
	}); err != nil {
		return nil, fmt.Errorf("recording status of %s: %w", sub.CreationID, err)
	}

	if res.ProcessingStatus == sub.ProcessingStatus {
		return nil, nil
	}

	metrics.SyncTransitionsTotal.WithLabelValues(string(res.ProcessingStatus)).Inc()
	s.log.Info("processing status changed",
		"creation_id", sub.CreationID,
		"from", sub.ProcessingStatus,
		"to", res.ProcessingStatus,
	)

	return &notify.StatusChange{
		CreationID:      sub.CreationID,
		AdvertisementID: res.ID.String(),
		JobTitle:        res.JobTitle,
		Location:        sub.Location,
		From:            sub.ProcessingStatus,
		To:              res.ProcessingStatus,
		RequestID:       requestID,
		Errors:          res.Errors,
	}, nil
}

func (s *Syncer) notify(ctx context.Context, changes []notify.StatusChange) {
	var err error
	switch len(changes) {
	case 0:
		return
	case 1:
		err = s.notifier.SendStatusChange(ctx, &changes[0])
	default:
		err = s.notifier.SendBatch(ctx, changes)
	}
	if err != nil {
		s.log.Error("sending status notification", "count", len(changes), "error", err)
		metrics.NotificationFailuresTotal.Inc()
	}
}
