package psql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the catalog schema. Applied at startup; idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	image_file TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS songs (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	artist TEXT NOT NULL,
	cover TEXT NOT NULL,
	file TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS playlists (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	user_id UUID NOT NULL REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS playlist_songs (
	playlist_id UUID NOT NULL REFERENCES playlists(id),
	song_id UUID NOT NULL REFERENCES songs(id),
	PRIMARY KEY (playlist_id, song_id)
);
`

// Migrate applies the schema.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, Schema)
	return err
}
