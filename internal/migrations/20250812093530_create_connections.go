package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateConnections, downCreateConnections)
}

func upCreateConnections(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.Exec(`
	CREATE TABLE connections (
		session_id VARCHAR PRIMARY KEY,
		fb_page_id VARCHAR NOT NULL DEFAULT '',
		fb_page_name VARCHAR NOT NULL DEFAULT '',
		fb_page_token TEXT NOT NULL DEFAULT '',
		ig_user_id VARCHAR NOT NULL DEFAULT '',
		ig_username VARCHAR NOT NULL DEFAULT '',
		ig_access_token TEXT NOT NULL DEFAULT '',
		yt_channel_id VARCHAR NOT NULL DEFAULT '',
		yt_connected BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL
	);
	`)
	if err != nil {
		return err
	}
	return nil
}

func downCreateConnections(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.Exec(`
	DROP TABLE connections;
	`)
	if err != nil {
		return err
	}
	return nil
}
