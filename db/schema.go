// Copyright (c) 2025 Michael Chen.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Users
CREATE TABLE IF NOT EXISTS app_user (
    fid BIGINT PRIMARY KEY,
    username TEXT NOT NULL DEFAULT '',
    display_name TEXT NOT NULL DEFAULT '',
    avatar_url TEXT NOT NULL DEFAULT '',
    builder_score DOUBLE PRECISION NOT NULL DEFAULT 0,
    talent_holdings DOUBLE PRECISION NOT NULL DEFAULT 0,
    total_voting_power BIGINT NOT NULL DEFAULT 0,
    available_votes BIGINT NOT NULL DEFAULT 0 CHECK (available_votes >= 0),
    locked_votes BIGINT NOT NULL DEFAULT 0 CHECK (locked_votes >= 0),
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);

-- Data points
CREATE TABLE IF NOT EXISTS data_point (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    issuer_name TEXT NOT NULL DEFAULT '',
    pts BIGINT NOT NULL DEFAULT 0,
    image_url TEXT NOT NULL DEFAULT '',
    total_votes BIGINT NOT NULL DEFAULT 0 CHECK (total_votes >= 0),
    status TEXT NOT NULL DEFAULT 'voting' CHECK (status IN ('voting', 'to_launch', 'launched')),
    position BIGSERIAL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_data_point_status ON data_point(status);

-- Allocations (one row per user per data point, never deleted)
CREATE TABLE IF NOT EXISTS allocation (
    fid BIGINT NOT NULL REFERENCES app_user(fid),
    data_point_id TEXT NOT NULL REFERENCES data_point(id),
    votes_cast BIGINT NOT NULL DEFAULT 0 CHECK (votes_cast >= 0),
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
    PRIMARY KEY (fid, data_point_id)
);

CREATE INDEX IF NOT EXISTS idx_allocation_data_point ON allocation(data_point_id);

-- Vote history (append-only, never mutated)
CREATE TABLE IF NOT EXISTS vote_history (
    id TEXT PRIMARY KEY,
    fid BIGINT NOT NULL,
    data_point_id TEXT NOT NULL,
    change_type TEXT NOT NULL CHECK (change_type IN ('vote', 'redeem', 'snapshot_to_launch', 'snapshot_to_launched')),
    delta BIGINT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_vote_history_fid ON vote_history(fid, data_point_id);

-- A lifecycle snapshot may exist at most once per (user, data point, type),
-- which makes re-running a status transition a no-op
CREATE UNIQUE INDEX IF NOT EXISTS idx_vote_history_snapshot_once
    ON vote_history(fid, data_point_id, change_type)
    WHERE change_type IN ('snapshot_to_launch', 'snapshot_to_launched');
`
