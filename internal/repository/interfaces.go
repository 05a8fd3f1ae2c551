package repository

import (
	"context"
	"errors"

	"feedback-prioritizer/internal/models"
)

// ErrClosed is returned by stores used after Close.
var ErrClosed = errors.New("store closed")

// FeedbackRepository is an append-only collection of feedback records.
// Implementations serialize writers so concurrent appends are never lost, and
// ListAll returns records in the order their Append calls succeeded.
type FeedbackRepository interface {
	// Init prepares the backing resource. It is called once at startup,
	// before the first Append or ListAll.
	Init(ctx context.Context) error
	Append(ctx context.Context, f *models.Feedback) error
	ListAll(ctx context.Context) ([]models.Feedback, error)
	Close() error
}
