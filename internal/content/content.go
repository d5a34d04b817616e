package content

import (
	"context"
	"errors"

	"github.com/orgball2608/social-publisher/internal/domain"
)

// ErrUnavailable is returned when the generation backend is rate limited or
// its circuit breaker is open.
var ErrUnavailable = errors.New("content generation temporarily unavailable")

//go:generate go run go.uber.org/mock/mockgen -source=content.go -destination=mocks/mock.go
type Client interface {
	// Generate produces per-platform captions and a shared hashtag set for
	// the prompt.
	Generate(ctx context.Context, prompt string, platforms []domain.Platform) (*domain.GeneratedContent, error)
}
