package instagramimpl

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/orgball2608/social-publisher/internal/domain"
	"github.com/orgball2608/social-publisher/internal/graph"
	"github.com/orgball2608/social-publisher/internal/instagram"
	"github.com/orgball2608/social-publisher/internal/media"
)

// Container lifecycle, discovered via status_code polling:
//
//	CREATED --(IN_PROGRESS)--> CREATED
//	CREATED --(FINISHED)-----> READY
//	CREATED --(ERROR)--------> FAILED        terminal
//	CREATED --(attempts out)-> FAILED        terminal, timed out
//	READY   --(publish)------> PUBLISHED     terminal
const (
	statusInProgress = "IN_PROGRESS"
	statusFinished   = "FINISHED"
	statusError      = "ERROR"
)

// Publish creates a media container, waits for it to finish processing and
// publishes it. The container is consumed exactly once by the publish call.
func (ig *IgImpl) Publish(ctx context.Context, conn domain.InstagramConnection, caption, mediaURL string, kind media.Kind) (string, error) {
	if kind == media.KindImage && mediaURL == "" {
		return "", instagram.ErrFacebookPhotoRequired
	}

	creationID, err := ig.createContainer(ctx, conn, caption, mediaURL, kind)
	if err != nil {
		return "", err
	}

	if err := ig.waitForContainer(ctx, conn.AccessToken, creationID); err != nil {
		return "", err
	}

	return ig.publishContainer(ctx, conn, creationID)
}

func (ig *IgImpl) createContainer(ctx context.Context, conn domain.InstagramConnection, caption, mediaURL string, kind media.Kind) (string, error) {
	ig.Logger.Info("Creating media container", "ig_user_id", conn.UserID, "kind", kind)

	form := url.Values{}
	form.Set("caption", caption)
	form.Set("access_token", conn.AccessToken)
	switch kind {
	case media.KindVideo:
		form.Set("video_url", mediaURL)
		form.Set("media_type", "REELS")
	default:
		form.Set("image_url", mediaURL)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := ig.Graph.PostForm(ctx, conn.UserID+"/media", form, &created); err != nil {
		return "", asPublishError(err)
	}
	if created.ID == "" {
		return "", &instagram.PublishError{Reason: "no creation id in container response"}
	}

	ig.Logger.Info("Media container created", "creation_id", created.ID)
	return created.ID, nil
}

// waitForContainer polls the container's status_code, sleeping PollInterval
// between attempts, up to PollAttempts times. ERROR is terminal; running out
// of attempts is terminal too.
func (ig *IgImpl) waitForContainer(ctx context.Context, accessToken, creationID string) error {
	query := url.Values{}
	query.Set("fields", "status_code")
	query.Set("access_token", accessToken)

	for attempt := 1; attempt <= ig.PollAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(ig.PollInterval):
		}

		var status struct {
			StatusCode string `json:"status_code"`
		}
		if err := ig.Graph.GetJSON(ctx, creationID, query, &status); err != nil {
			return asPublishError(err)
		}

		switch status.StatusCode {
		case statusFinished:
			ig.Logger.Info("Media container ready", "creation_id", creationID, "attempts", attempt)
			return nil
		case statusError:
			return &instagram.PublishError{Reason: "media container entered ERROR state"}
		case statusInProgress:
			ig.Logger.Debug("Media container still processing", "creation_id", creationID, "attempt", attempt)
		default:
			ig.Logger.Warn("Unknown container status, continuing to poll",
				"creation_id", creationID,
				"status", status.StatusCode)
		}
	}

	return fmt.Errorf("%w after %d attempts", instagram.ErrProcessingTimeout, ig.PollAttempts)
}

func (ig *IgImpl) publishContainer(ctx context.Context, conn domain.InstagramConnection, creationID string) (string, error) {
	form := url.Values{}
	form.Set("creation_id", creationID)
	form.Set("access_token", conn.AccessToken)

	var published struct {
		ID string `json:"id"`
	}
	if err := ig.Graph.PostForm(ctx, conn.UserID+"/media_publish", form, &published); err != nil {
		return "", asPublishError(err)
	}
	if published.ID == "" {
		return "", &instagram.PublishError{Reason: "no media id in publish response"}
	}

	ig.Logger.Info("Media published", "media_id", published.ID)
	return published.ID, nil
}

func asPublishError(err error) error {
	var apiErr *graph.APIError
	if errors.As(err, &apiErr) {
		return &instagram.PublishError{Reason: apiErr.Message}
	}
	return err
}
