package connection

import (
	"context"
	"errors"

	"github.com/orgball2608/social-publisher/internal/domain"
)

var ErrNotFound = errors.New("connection not found")

//go:generate go run go.uber.org/mock/mockgen -source=connection.go -destination=mocks/mock.go
type Repository interface {
	// Upsert stores a session's connection details, replacing any previous
	// ones.
	Upsert(ctx context.Context, details domain.ConnectionDetails) error

	// GetBySessionID returns the details stored for a session.
	GetBySessionID(ctx context.Context, sessionID string) (*domain.ConnectionDetails, error)

	// DeleteBySessionID clears a session's connection details.
	DeleteBySessionID(ctx context.Context, sessionID string) error
}
