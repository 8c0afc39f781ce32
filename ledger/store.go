// Copyright (c) 2025 Michael Chen.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mchen-dev/powercast/models"
)

// Store is the persistent vote ledger backed by Postgres
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const userColumns = `fid, username, display_name, avatar_url, builder_score, talent_holdings,
       total_voting_power, available_votes, locked_votes, created_at, updated_at`

const dataPointColumns = `id, name, description, issuer_name, pts, image_url, total_votes, status, created_at`

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.FID, &u.Username, &u.DisplayName, &u.AvatarURL, &u.BuilderScore, &u.TalentHoldings,
		&u.TotalVotingPower, &u.AvailableVotes, &u.LockedVotes, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}

func scanDataPoint(row *sql.Row) (*models.DataPoint, error) {
	var d models.DataPoint
	err := row.Scan(
		&d.ID, &d.Name, &d.Description, &d.IssuerName, &d.Pts, &d.ImageURL,
		&d.TotalVotes, &d.Status, &d.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan data point: %w", err)
	}
	return &d, nil
}

// GetUser returns the ledger row for a fid
func (s *Store) GetUser(ctx context.Context, fid int64) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM app_user WHERE fid = $1
	`, fid)
	return scanUser(row)
}

// GetDataPoint returns one catalog item
func (s *Store) GetDataPoint(ctx context.Context, id string) (*models.DataPoint, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+dataPointColumns+` FROM data_point WHERE id = $1
	`, id)
	return scanDataPoint(row)
}

// GetAllocation returns the caller's allocation on a data point.
// An absent row is not an error: it is returned as votes_cast = 0.
func (s *Store) GetAllocation(ctx context.Context, fid int64, dataPointID string) (*models.Allocation, error) {
	var a models.Allocation
	err := s.db.QueryRowContext(ctx, `
		SELECT fid, data_point_id, votes_cast, created_at, updated_at
		FROM allocation
		WHERE fid = $1 AND data_point_id = $2
	`, fid, dataPointID).Scan(&a.FID, &a.DataPointID, &a.VotesCast, &a.CreatedAt, &a.UpdatedAt)

	if err == sql.ErrNoRows {
		return &models.Allocation{FID: fid, DataPointID: dataPointID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query allocation: %w", err)
	}
	return &a, nil
}

// UpsertAllocation sets the absolute allocation for a (user, data point)
// pair. Idempotent set, not an increment.
func (s *Store) UpsertAllocation(ctx context.Context, fid int64, dataPointID string, votesCast int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO allocation (fid, data_point_id, votes_cast)
		VALUES ($1, $2, $3)
		ON CONFLICT (fid, data_point_id)
		DO UPDATE SET votes_cast = $3, updated_at = NOW()
	`, fid, dataPointID, votesCast)
	if err != nil {
		return fmt.Errorf("failed to upsert allocation: %w", err)
	}
	return nil
}

// AdjustDataPointTotal applies a signed delta to a data point's aggregate
// total. Never a blind overwrite, so concurrent adjusters cannot lose
// updates. Fails with ErrInsufficientBudget if the total would go negative.
func (s *Store) AdjustDataPointTotal(ctx context.Context, id string, delta int64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE data_point
		SET total_votes = total_votes + $2
		WHERE id = $1 AND total_votes + $2 >= 0
	`, id, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust data point total: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		if _, err := s.GetDataPoint(ctx, id); err != nil {
			return err
		}
		return ErrInsufficientBudget
	}
	return nil
}

// AdjustUserBudget applies signed deltas to a user's available and locked
// votes. Fails with ErrInsufficientBudget if either field would go
// negative; the guard is part of the UPDATE so it is atomic.
func (s *Store) AdjustUserBudget(ctx context.Context, fid int64, deltaAvailable, deltaLocked int64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE app_user
		SET available_votes = available_votes + $2,
		    locked_votes = locked_votes + $3,
		    updated_at = NOW()
		WHERE fid = $1 AND available_votes + $2 >= 0 AND locked_votes + $3 >= 0
	`, fid, deltaAvailable, deltaLocked)
	if err != nil {
		return fmt.Errorf("failed to adjust user budget: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		if _, err := s.GetUser(ctx, fid); err != nil {
			return err
		}
		return ErrInsufficientBudget
	}
	return nil
}

// UpsertProfile creates or updates the identity-provider fields of a user
// row without touching the budget fields. Called at login.
func (s *Store) UpsertProfile(ctx context.Context, fid int64, username, displayName, avatarURL string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO app_user (fid, username, display_name, avatar_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (fid)
		DO UPDATE SET username = $2, display_name = $3, avatar_url = $4, updated_at = NOW()
		RETURNING `+userColumns+`
	`, fid, username, displayName, avatarURL)
	return scanUser(row)
}

// RefreshUser recomputes a user's total voting power from freshly fetched
// external signals, creating the row on first fetch. Available votes are
// re-derived as max(0, total - locked); locked votes are never touched by a
// refresh, so a score drop below the locked amount is tolerated (available
// pins at 0) until redeems free the difference.
func (s *Store) RefreshUser(ctx context.Context, fid int64, builderScore, talentHoldings float64) (*models.User, error) {
	total := VotingPower(builderScore, talentHoldings)

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO app_user (fid, builder_score, talent_holdings, total_voting_power, available_votes)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (fid)
		DO UPDATE SET builder_score = $2,
		              talent_holdings = $3,
		              total_voting_power = $4,
		              available_votes = GREATEST(0, $4 - app_user.locked_votes),
		              updated_at = NOW()
		RETURNING `+userColumns+`
	`, fid, builderScore, talentHoldings, total)
	return scanUser(row)
}

// CreateDataPoint inserts a new catalog item in voting status
func (s *Store) CreateDataPoint(ctx context.Context, d *models.DataPoint) (*models.DataPoint, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO data_point (id, name, description, issuer_name, pts, image_url, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+dataPointColumns+`
	`, d.ID, d.Name, d.Description, d.IssuerName, d.Pts, d.ImageURL, models.StatusVoting)
	return scanDataPoint(row)
}
