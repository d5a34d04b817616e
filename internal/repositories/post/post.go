package post

import (
	"context"
	"errors"
	"time"

	"github.com/orgball2608/social-publisher/internal/domain"
)

var (
	ErrNotFound     = errors.New("post not found")
	ErrCannotCreate = errors.New("error create post")
)

//go:generate go run go.uber.org/mock/mockgen -source=post.go -destination=mocks/mock.go
type Repository interface {
	// Create persists a published post record.
	Create(ctx context.Context, post domain.Post) error

	// GetByID returns a single post.
	GetByID(ctx context.Context, id string) (*domain.Post, error)

	// ListBySession returns a session's posts, newest first.
	ListBySession(ctx context.Context, sessionID string, limit int) ([]*domain.Post, error)

	// ListPostedSince returns posts published after the cutoff, across all
	// sessions. The insights refresher walks this.
	ListPostedSince(ctx context.Context, since time.Time) ([]*domain.Post, error)

	// UpdateEngagement overwrites a post's engagement counters.
	UpdateEngagement(ctx context.Context, id string, engagement domain.Engagement) error

	// Delete removes a post record.
	Delete(ctx context.Context, id string) error
}
