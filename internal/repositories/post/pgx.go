package post

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
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
		logger: logger.WithComponent("PostRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

const postColumns = "id, session_id, platforms, remote_ids, audience, media_url, prompt, caption, hashtags, generated, posted_at, likes, comments, shares"

func (p *Pgx) Create(ctx context.Context, post domain.Post) error {
	remoteIDs, err := json.Marshal(post.RemoteIDs)
	if err != nil {
		return fmt.Errorf("failed to encode remote ids: %w", err)
	}

	var generated []byte
	if post.Generated != nil {
		generated, err = json.Marshal(post.Generated)
		if err != nil {
			return fmt.Errorf("failed to encode generated content: %w", err)
		}
	}

	query, args, err := repositories.SqBuilder.
		Insert("posts").
		Columns("id", "session_id", "platforms", "remote_ids", "audience", "media_url",
			"prompt", "caption", "hashtags", "generated", "posted_at", "likes", "comments", "shares").
		Values(post.ID, post.SessionID, platformStrings(post.Platforms), remoteIDs, post.Audience,
			post.MediaURL, post.Prompt, post.Caption, post.Hashtags, generated, post.PostedAt,
			post.Engagement.Likes, post.Engagement.Comments, post.Engagement.Shares).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	_, err = p.pg.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrCannotCreate
		}
		return err
	}
	return nil
}

func (p *Pgx) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	query, args, err := repositories.SqBuilder.
		Select(postColumns).
		From("posts").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	post, err := scanPost(p.pg.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}
	return post, nil
}

func (p *Pgx) ListBySession(ctx context.Context, sessionID string, limit int) ([]*domain.Post, error) {
	builder := repositories.SqBuilder.
		Select(postColumns).
		From("posts").
		Where(sq.Eq{"session_id": sessionID}).
		OrderBy("posted_at DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	return p.queryPosts(ctx, query, args...)
}

func (p *Pgx) ListPostedSince(ctx context.Context, since time.Time) ([]*domain.Post, error) {
	query, args, err := repositories.SqBuilder.
		Select(postColumns).
		From("posts").
		Where(sq.GtOrEq{"posted_at": since}).
		OrderBy("posted_at DESC").
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	return p.queryPosts(ctx, query, args...)
}

func (p *Pgx) UpdateEngagement(ctx context.Context, id string, engagement domain.Engagement) error {
	query, args, err := repositories.SqBuilder.
		Update("posts").
		Set("likes", engagement.Likes).
		Set("comments", engagement.Comments).
		Set("shares", engagement.Shares).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	result, err := p.pg.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Pgx) Delete(ctx context.Context, id string) error {
	query, args, err := repositories.SqBuilder.
		Delete("posts").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	result, err := p.pg.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Pgx) queryPosts(ctx context.Context, query string, args ...any) ([]*domain.Post, error) {
	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*domain.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*domain.Post, error) {
	var (
		post      domain.Post
		platforms []string
		remoteIDs []byte
		generated []byte
	)
	err := row.Scan(
		&post.ID,
		&post.SessionID,
		&platforms,
		&remoteIDs,
		&post.Audience,
		&post.MediaURL,
		&post.Prompt,
		&post.Caption,
		&post.Hashtags,
		&generated,
		&post.PostedAt,
		&post.Engagement.Likes,
		&post.Engagement.Comments,
		&post.Engagement.Shares,
	)
	if err != nil {
		return nil, err
	}

	post.Platforms = make([]domain.Platform, 0, len(platforms))
	for _, platform := range platforms {
		post.Platforms = append(post.Platforms, domain.Platform(platform))
	}
	if len(remoteIDs) > 0 {
		if err := json.Unmarshal(remoteIDs, &post.RemoteIDs); err != nil {
			return nil, fmt.Errorf("failed to decode remote ids: %w", err)
		}
	}
	if len(generated) > 0 {
		if err := json.Unmarshal(generated, &post.Generated); err != nil {
			return nil, fmt.Errorf("failed to decode generated content: %w", err)
		}
	}
	return &post, nil
}

func platformStrings(platforms []domain.Platform) []string {
	out := make([]string, 0, len(platforms))
	for _, platform := range platforms {
		out = append(out, string(platform))
	}
	return out
}
