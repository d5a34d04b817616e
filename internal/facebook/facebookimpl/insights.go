package facebookimpl

import (
	"context"
	"fmt"
	"net/url"

	"github.com/orgball2608/social-publisher/internal/domain"
)

// Engagement fetches the likes/comments/shares summary for a published post.
func (fb *FbImpl) Engagement(ctx context.Context, accessToken, postID string) (domain.Engagement, error) {
	query := url.Values{}
	query.Set("fields", "likes.summary(true),comments.summary(true),shares")
	query.Set("access_token", accessToken)

	var resp struct {
		Likes struct {
			Summary struct {
				TotalCount int `json:"total_count"`
			} `json:"summary"`
		} `json:"likes"`
		Comments struct {
			Summary struct {
				TotalCount int `json:"total_count"`
			} `json:"summary"`
		} `json:"comments"`
		Shares struct {
			Count int `json:"count"`
		} `json:"shares"`
	}

	if err := fb.Graph.GetJSON(ctx, postID, query, &resp); err != nil {
		return domain.Engagement{}, fmt.Errorf("failed to fetch engagement for %s: %w", postID, err)
	}

	return domain.Engagement{
		Likes:    resp.Likes.Summary.TotalCount,
		Comments: resp.Comments.Summary.TotalCount,
		Shares:   resp.Shares.Count,
	}, nil
}

// DeletePost removes a post from the Page.
func (fb *FbImpl) DeletePost(ctx context.Context, accessToken, postID string) error {
	query := url.Values{}
	query.Set("access_token", accessToken)

	if err := fb.Graph.Delete(ctx, postID, query); err != nil {
		return fmt.Errorf("failed to delete post %s: %w", postID, err)
	}

	fb.Logger.Info("Deleted post", "post_id", postID)
	return nil
}
