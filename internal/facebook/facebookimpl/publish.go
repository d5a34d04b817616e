package facebookimpl

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/orgball2608/social-publisher/internal/domain"
	"github.com/orgball2608/social-publisher/internal/facebook"
	"github.com/orgball2608/social-publisher/internal/graph"
)

// PublishPhoto uploads the image as multipart form data to the Page's
// /photos endpoint, then fetches the published object's full_picture URL.
// The secondary fetch failing does not fail the publish: the photo is live,
// so the result carries an empty PublicPhotoURL instead.
func (fb *FbImpl) PublishPhoto(ctx context.Context, conn domain.FacebookConnection, caption string, image []byte, fileName string) (facebook.PhotoResult, error) {
	fb.Logger.Info("Publishing photo to page", "page_id", conn.PageID, "bytes", len(image))

	fields := map[string]string{
		"access_token": conn.PageAccessToken,
		"caption":      caption,
	}

	var created struct {
		ID     string `json:"id"`
		PostID string `json:"post_id"`
	}
	err := fb.Graph.PostMultipart(ctx, conn.PageID+"/photos", fields, "source", fileName, image, &created)
	if err != nil {
		return facebook.PhotoResult{}, asPublishError(err)
	}

	postID := created.PostID
	if postID == "" {
		postID = created.ID
	}
	if postID == "" {
		return facebook.PhotoResult{}, &facebook.PublishError{Reason: "no post id in photo upload response"}
	}

	result := facebook.PhotoResult{PostID: postID}

	publicURL, err := fb.fetchPublicPhotoURL(ctx, conn.PageAccessToken, postID)
	if err != nil {
		fb.Logger.Warn("Published photo but could not fetch its public URL, Instagram image publishing is unavailable this cycle",
			"post_id", postID,
			"error", err)
		return result, nil
	}

	result.PublicPhotoURL = publicURL
	fb.Logger.Info("Photo published", "post_id", postID)
	return result, nil
}

func (fb *FbImpl) fetchPublicPhotoURL(ctx context.Context, accessToken, postID string) (string, error) {
	query := url.Values{}
	query.Set("fields", "full_picture")
	query.Set("access_token", accessToken)

	var resp struct {
		FullPicture string `json:"full_picture"`
	}
	if err := fb.Graph.GetJSON(ctx, postID, query, &resp); err != nil {
		return "", err
	}
	if resp.FullPicture == "" {
		return "", fmt.Errorf("published object has no full_picture")
	}
	return resp.FullPicture, nil
}

// PublishVideo registers a hosted video URL on the Page's /videos endpoint.
// No secondary fetch is needed: Instagram can reuse the hosted URL directly.
func (fb *FbImpl) PublishVideo(ctx context.Context, conn domain.FacebookConnection, description, videoURL string) (string, error) {
	fb.Logger.Info("Publishing video to page", "page_id", conn.PageID, "video_url", videoURL)

	form := url.Values{}
	form.Set("file_url", videoURL)
	form.Set("description", description)
	form.Set("access_token", conn.PageAccessToken)

	var created struct {
		ID string `json:"id"`
	}
	if err := fb.Graph.PostForm(ctx, conn.PageID+"/videos", form, &created); err != nil {
		return "", asPublishError(err)
	}
	if created.ID == "" {
		return "", &facebook.PublishError{Reason: "no post id in video upload response"}
	}

	fb.Logger.Info("Video published", "post_id", created.ID)
	return created.ID, nil
}

// asPublishError converts a Graph API error body into the publish error the
// orchestrator aggregates; transport errors pass through wrapped.
func asPublishError(err error) error {
	var apiErr *graph.APIError
	if errors.As(err, &apiErr) {
		return &facebook.PublishError{Reason: apiErr.Message}
	}
	return &facebook.PublishError{Reason: err.Error()}
}
