package connectionsimpl

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/orgball2608/social-publisher/internal/connections"
	"github.com/orgball2608/social-publisher/internal/domain"
	"github.com/orgball2608/social-publisher/internal/repositories/connection"
)

// ConnectFacebook performs the one-time Graph exchange: user token to the
// first managed Page's id/name/token, then follows the Page's
// instagram_business_account edge. Instagram discovery failing is not fatal;
// the session is stored with the Facebook block alone and Instagram
// publishing short-circuits as "connection details not provided".
func (c *ConnImpl) ConnectFacebook(ctx context.Context, sessionID, userToken string) (*domain.ConnectionDetails, error) {
	page, err := c.firstManagedPage(ctx, userToken)
	if err != nil {
		return nil, err
	}

	details := &domain.ConnectionDetails{
		SessionID: sessionID,
		Facebook: &domain.FacebookConnection{
			PageID:          page.ID,
			PageName:        page.Name,
			PageAccessToken: page.AccessToken,
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	igAccount, err := c.resolveInstagramAccount(ctx, page.ID, page.AccessToken)
	if err != nil {
		c.Logger.Warn("No Instagram business account resolved for page",
			"page_id", page.ID,
			"error", err)
	} else {
		details.Instagram = &domain.InstagramConnection{
			UserID:   igAccount.ID,
			Username: igAccount.Username,
			// Instagram Graph calls are made with the page token.
			AccessToken: page.AccessToken,
		}
	}

	if err := c.ConnectionRepo.Upsert(ctx, *details); err != nil {
		return nil, fmt.Errorf("failed to store connection details: %w", err)
	}

	c.Logger.Info("Session connected",
		"session_id", sessionID,
		"page_id", page.ID,
		"instagram", details.Instagram != nil)
	return details, nil
}

type managedPage struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AccessToken string `json:"access_token"`
}

func (c *ConnImpl) firstManagedPage(ctx context.Context, userToken string) (*managedPage, error) {
	query := url.Values{}
	query.Set("fields", "id,name,access_token")
	query.Set("access_token", userToken)

	var resp struct {
		Data []managedPage `json:"data"`
	}
	if err := c.Graph.GetJSON(ctx, "me/accounts", query, &resp); err != nil {
		return nil, fmt.Errorf("failed to list managed pages: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, connections.ErrNoManagedPages
	}
	return &resp.Data[0], nil
}

type instagramAccount struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func (c *ConnImpl) resolveInstagramAccount(ctx context.Context, pageID, pageToken string) (*instagramAccount, error) {
	query := url.Values{}
	query.Set("fields", "instagram_business_account")
	query.Set("access_token", pageToken)

	var pageResp struct {
		InstagramBusinessAccount struct {
			ID string `json:"id"`
		} `json:"instagram_business_account"`
	}
	if err := c.Graph.GetJSON(ctx, pageID, query, &pageResp); err != nil {
		return nil, fmt.Errorf("failed to check instagram connection: %w", err)
	}
	if pageResp.InstagramBusinessAccount.ID == "" {
		return nil, fmt.Errorf("page has no linked instagram business account")
	}

	igQuery := url.Values{}
	igQuery.Set("fields", "id,username")
	igQuery.Set("access_token", pageToken)

	var account instagramAccount
	if err := c.Graph.GetJSON(ctx, pageResp.InstagramBusinessAccount.ID, igQuery, &account); err != nil {
		return nil, fmt.Errorf("failed to fetch instagram account details: %w", err)
	}
	return &account, nil
}

func (c *ConnImpl) Get(ctx context.Context, sessionID string) (*domain.ConnectionDetails, error) {
	details, err := c.ConnectionRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, connection.ErrNotFound) {
			return nil, connections.ErrNotConnected
		}
		return nil, err
	}
	return details, nil
}

func (c *ConnImpl) Disconnect(ctx context.Context, sessionID string) error {
	err := c.ConnectionRepo.DeleteBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, connection.ErrNotFound) {
			return connections.ErrNotConnected
		}
		return err
	}
	c.Logger.Info("Session disconnected", "session_id", sessionID)
	return nil
}
