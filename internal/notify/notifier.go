// Package notify defines the notification interface and implementations
// for advertisement status changes.
package notify

import (
	"context"

	domain "github.com/donaldgifford/adposting/pkg/types"
)

// StatusChange describes an advertisement whose processing status moved on.
type StatusChange struct {
	CreationID      string
	AdvertisementID string
	JobTitle        string
	Location        string
	From            domain.ProcessingStatus
	To              domain.ProcessingStatus
	RequestID       string
	Errors          []domain.AdvertisementError
}

// Notifier defines the interface for sending status change notifications.
type Notifier interface {
	SendStatusChange(ctx context.Context, change *StatusChange) error
	SendBatch(ctx context.Context, changes []StatusChange) error
}
