package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreatePosts, downCreatePosts)
}

func upCreatePosts(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.Exec(`
	CREATE TABLE posts (
		id VARCHAR PRIMARY KEY,
		session_id VARCHAR NOT NULL,
		platforms TEXT[] NOT NULL DEFAULT '{}',
		remote_ids JSONB,
		audience VARCHAR,
		media_url TEXT,
		prompt TEXT,
		caption TEXT,
		hashtags TEXT[] NOT NULL DEFAULT '{}',
		generated JSONB,
		posted_at TIMESTAMP WITH TIME ZONE NOT NULL,
		likes INTEGER NOT NULL DEFAULT 0,
		comments INTEGER NOT NULL DEFAULT 0,
		shares INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX idx_posts_session_id ON posts (session_id);
	CREATE INDEX idx_posts_posted_at ON posts (posted_at);
	`)
	if err != nil {
		return err
	}
	return nil
}

func downCreatePosts(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.Exec(`
	DROP TABLE posts;
	`)
	if err != nil {
		return err
	}
	return nil
}
