package connection

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/social-publisher/internal/domain"
	"github.com/orgball2608/social-publisher/internal/repositories"
	"github.com/orgball2608/social-publisher/pkg/logger"
)

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("ConnectionRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

func (r *Pgx) Upsert(ctx context.Context, details domain.ConnectionDetails) error {
	var (
		fbPageID, fbPageName, fbPageToken string
		igUserID, igUsername, igToken     string
		ytChannelID                       string
		ytConnected                       bool
	)
	if details.Facebook != nil {
		fbPageID = details.Facebook.PageID
		fbPageName = details.Facebook.PageName
		fbPageToken = details.Facebook.PageAccessToken
	}
	if details.Instagram != nil {
		igUserID = details.Instagram.UserID
		igUsername = details.Instagram.Username
		igToken = details.Instagram.AccessToken
	}
	if details.YouTube != nil {
		ytChannelID = details.YouTube.ChannelID
		ytConnected = details.YouTube.Connected
	}

	query := `
		INSERT INTO connections (
			session_id, fb_page_id, fb_page_name, fb_page_token,
			ig_user_id, ig_username, ig_access_token,
			yt_channel_id, yt_connected, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		ON CONFLICT (session_id) DO UPDATE SET
			fb_page_id = EXCLUDED.fb_page_id,
			fb_page_name = EXCLUDED.fb_page_name,
			fb_page_token = EXCLUDED.fb_page_token,
			ig_user_id = EXCLUDED.ig_user_id,
			ig_username = EXCLUDED.ig_username,
			ig_access_token = EXCLUDED.ig_access_token,
			yt_channel_id = EXCLUDED.yt_channel_id,
			yt_connected = EXCLUDED.yt_connected,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.pg.Exec(ctx, query,
		details.SessionID, fbPageID, fbPageName, fbPageToken,
		igUserID, igUsername, igToken,
		ytChannelID, ytConnected, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert connection: %w", err)
	}
	return nil
}

func (r *Pgx) GetBySessionID(ctx context.Context, sessionID string) (*domain.ConnectionDetails, error) {
	query, args, err := repositories.SqBuilder.
		Select("session_id", "fb_page_id", "fb_page_name", "fb_page_token",
			"ig_user_id", "ig_username", "ig_access_token",
			"yt_channel_id", "yt_connected", "created_at", "updated_at").
		From("connections").
		Where(sq.Eq{"session_id": sessionID}).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	var (
		details                           domain.ConnectionDetails
		fbPageID, fbPageName, fbPageToken string
		igUserID, igUsername, igToken     string
		ytChannelID                       string
		ytConnected                       bool
	)
	err = r.pg.QueryRow(ctx, query, args...).Scan(
		&details.SessionID,
		&fbPageID, &fbPageName, &fbPageToken,
		&igUserID, &igUsername, &igToken,
		&ytChannelID, &ytConnected,
		&details.CreatedAt, &details.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get connection by session id: %w", err)
	}

	if fbPageID != "" {
		details.Facebook = &domain.FacebookConnection{
			PageID:          fbPageID,
			PageName:        fbPageName,
			PageAccessToken: fbPageToken,
		}
	}
	if igUserID != "" {
		details.Instagram = &domain.InstagramConnection{
			UserID:      igUserID,
			Username:    igUsername,
			AccessToken: igToken,
		}
	}
	if ytChannelID != "" || ytConnected {
		details.YouTube = &domain.YouTubeConnection{
			ChannelID: ytChannelID,
			Connected: ytConnected,
		}
	}
	return &details, nil
}

func (r *Pgx) DeleteBySessionID(ctx context.Context, sessionID string) error {
	query, args, err := repositories.SqBuilder.
		Delete("connections").
		Where(sq.Eq{"session_id": sessionID}).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	result, err := r.pg.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete connection: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
