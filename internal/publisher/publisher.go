package publisher

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/orgball2608/social-publisher/internal/domain"
)

// ErrConnectionMissing marks a platform that was requested without the
// credentials it needs.
var ErrConnectionMissing = errors.New("connection details not provided")

// Failure is one platform's publish outcome when it did not succeed.
type Failure struct {
	Platform domain.Platform
	Reason   string
}

// PartialFailureError aggregates every failed platform of a publish call.
// A caller can receive both a persisted Post (for the platforms that worked)
// and this error (for the rest); it is not an all-or-nothing outcome.
type PartialFailureError struct {
	Failures []Failure
}

func (e *PartialFailureError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s (%s)", f.Platform, f.Reason))
	}
	return strings.Join(parts, ", ")
}

//go:generate go run go.uber.org/mock/mockgen -source=publisher.go -destination=mocks/mock.go
type Client interface {
	// Publish runs the multi-platform pipeline for one request. It returns
	// the persisted Post covering the platforms that succeeded. When some
	// platforms fail the Post is still returned together with a
	// *PartialFailureError; when every platform fails the Post is nil.
	Publish(ctx context.Context, req domain.PublishRequest) (*domain.Post, error)
}
