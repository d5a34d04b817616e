package instagram

import (
	"context"
	"errors"

	"github.com/orgball2608/social-publisher/internal/domain"
	"github.com/orgball2608/social-publisher/internal/media"
)

// ErrFacebookPhotoRequired is returned when an image publish is attempted
// without the public photo URL a prior Facebook photo publish provides.
var ErrFacebookPhotoRequired = errors.New("Facebook image publish required first")

// ErrProcessingTimeout is returned when the media container never reaches
// FINISHED within the polling budget.
var ErrProcessingTimeout = errors.New("media container processing timed out")

// PublishError carries the reason the Graph API rejected a step of the
// container protocol.
type PublishError struct {
	Reason string
}

func (e *PublishError) Error() string {
	return e.Reason
}

//go:generate go run go.uber.org/mock/mockgen -source=instagram.go -destination=mocks/mock.go
type Client interface {
	// Publish runs the container protocol against the business account:
	// create a container for mediaURL, poll it until ready, then publish it.
	// For images mediaURL must be the public URL of an already-published
	// Facebook photo.
	Publish(ctx context.Context, conn domain.InstagramConnection, caption, mediaURL string, kind media.Kind) (string, error)
}
