package connections

import (
	"context"
	"errors"

	"github.com/orgball2608/social-publisher/internal/domain"
)

// ErrNotConnected is returned when a session has no stored connection
// details.
var ErrNotConnected = errors.New("session is not connected")

// ErrNoManagedPages is returned when the token exchange finds no Page the
// user manages.
var ErrNoManagedPages = errors.New("no managed pages for this user")

//go:generate go run go.uber.org/mock/mockgen -source=connections.go -destination=mocks/mock.go
type Client interface {
	// ConnectFacebook exchanges a short-lived user token for the first
	// managed Page's credentials, resolves the linked Instagram business
	// account, and stores the result for the session.
	ConnectFacebook(ctx context.Context, sessionID, userToken string) (*domain.ConnectionDetails, error)

	// Get returns the stored connection details for a session.
	Get(ctx context.Context, sessionID string) (*domain.ConnectionDetails, error)

	// Disconnect clears the session's connection details.
	Disconnect(ctx context.Context, sessionID string) error
}
