package facebook

import (
	"context"

	"github.com/orgball2608/social-publisher/internal/domain"
)

// PublishError carries the reason the Graph API rejected a publish call.
type PublishError struct {
	Reason string
}

func (e *PublishError) Error() string {
	return e.Reason
}

// PhotoResult is the outcome of a Page photo publish. PublicPhotoURL is the
// published object's full_picture URL; it may be empty when the follow-up
// fetch failed even though the photo itself is live.
type PhotoResult struct {
	PostID         string
	PublicPhotoURL string
}

//go:generate go run go.uber.org/mock/mockgen -source=facebook.go -destination=mocks/mock.go
type Client interface {
	// PublishPhoto uploads an image to the Page's /photos endpoint and then
	// fetches the published object's public picture URL.
	PublishPhoto(ctx context.Context, conn domain.FacebookConnection, caption string, image []byte, fileName string) (PhotoResult, error)

	// PublishVideo registers a hosted video URL on the Page's /videos
	// endpoint and returns the new post ID.
	PublishVideo(ctx context.Context, conn domain.FacebookConnection, description, videoURL string) (string, error)

	// Engagement fetches the likes/comments/shares summary for a post.
	Engagement(ctx context.Context, accessToken, postID string) (domain.Engagement, error)

	// DeletePost removes a post from the Page.
	DeletePost(ctx context.Context, accessToken, postID string) error
}
