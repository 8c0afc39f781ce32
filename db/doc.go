// Copyright (c) 2025 Michael Chen.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - app_user: Voting-power budget per fid (available/locked split)
  - data_point: Catalog items with aggregate totals and lifecycle status
  - allocation: Per-(user, data point) vote counts
  - vote_history: Append-only audit log of votes, redeems, and snapshots

# Relationships

	app_user 1──* allocation *──1 data_point
	app_user 1──* vote_history

Allocation rows are never deleted; a fully redeemed position stays at
votes_cast = 0 for audit. History rows are never mutated or deleted.

# Indexes

  - data_point.status for catalog filtering
  - allocation.data_point_id for aggregate reconciliation
  - vote_history.(fid, data_point_id) for audit lookups
  - a partial unique index over snapshot change types, enforcing
    at-most-one lifecycle snapshot per (user, data point, type)
*/
package db
