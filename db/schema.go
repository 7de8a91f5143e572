package db

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables. Safe to call on every start.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Schema is exported so integration tests can rebuild a scratch database.
const Schema = `
CREATE TABLE IF NOT EXISTS tournaments (
    id SERIAL PRIMARY KEY,
    slug TEXT NOT NULL,
    name TEXT NOT NULL,
    max_pairs INTEGER CHECK (max_pairs > 0),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CONSTRAINT tournaments_slug_key UNIQUE (slug)
);

CREATE TABLE IF NOT EXISTS pairs (
    id SERIAL PRIMARY KEY,
    tournament_id INTEGER NOT NULL REFERENCES tournaments(id) ON DELETE CASCADE,
    player1 TEXT NOT NULL,
    player2 TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_pairs_tournament_id ON pairs(tournament_id, id);

CREATE TABLE IF NOT EXISTS matches (
    id SERIAL PRIMARY KEY,
    tournament_id INTEGER NOT NULL REFERENCES tournaments(id) ON DELETE CASCADE,
    round INTEGER NOT NULL CHECK (round >= 1),
    pair1_id INTEGER NOT NULL REFERENCES pairs(id) ON DELETE RESTRICT,
    pair2_id INTEGER NOT NULL REFERENCES pairs(id) ON DELETE RESTRICT,
    score1 INTEGER NOT NULL DEFAULT 0,
    score2 INTEGER NOT NULL DEFAULT 0,
    played BOOLEAN NOT NULL DEFAULT FALSE,
    CONSTRAINT matches_check CHECK (pair1_id <> pair2_id)
);

CREATE INDEX IF NOT EXISTS idx_matches_tournament_round ON matches(tournament_id, round);
CREATE INDEX IF NOT EXISTS idx_matches_pair1 ON matches(pair1_id);
CREATE INDEX IF NOT EXISTS idx_matches_pair2 ON matches(pair2_id);
`
