// Copyright (c) 2025 Michael Chen.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/mchen-dev/powercast/models"
)

// Execute atomically moves a user's allocation on one data point to
// requestedVotes, shifting the difference between available and locked
// budget, adjusting the data point's aggregate total, and appending one
// history event - all in a single transaction.
//
// A positive difference is a vote, a negative one a redeem; requestedVotes
// equal to the current allocation is a successful no-op with zero writes.
// On any failure nothing is committed and all three rows are left exactly
// as they were.
func (s *Store) Execute(ctx context.Context, fid int64, dataPointID string, requestedVotes int64) (*models.VoteResult, error) {
	if requestedVotes < 0 {
		return nil, ErrBudgetExceeded
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Locking the user row first serializes every budget move for this
	// user, which covers the at-most-one-in-flight contract per
	// (user, data point) pair
	user, err := lockUser(ctx, tx, fid)
	if err != nil {
		return nil, err
	}

	dataPoint, err := scanDataPoint(tx.QueryRowContext(ctx, `
		SELECT `+dataPointColumns+` FROM data_point WHERE id = $1
	`, dataPointID))
	if err != nil {
		return nil, err
	}

	allocation, err := lockAllocation(ctx, tx, fid, dataPointID)
	if err != nil {
		return nil, err
	}

	delta := requestedVotes - allocation.VotesCast
	if delta == 0 {
		// No-op is not an error; commit without having written anything
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit transaction: %w", err)
		}
		return &models.VoteResult{
			User:       *user,
			DataPoint:  *dataPoint,
			Allocation: *allocation,
		}, nil
	}

	changeType := models.ChangeVote
	if delta > 0 {
		if delta > user.AvailableVotes {
			return nil, ErrBudgetExceeded
		}
	} else {
		changeType = models.ChangeRedeem
		if -delta > user.LockedVotes {
			// prev <= lockedVotes must hold by invariant; this is a
			// repair condition, not a user error
			slog.Error("allocation exceeds locked votes",
				"fid", fid,
				"data_point_id", dataPointID,
				"votes_cast", allocation.VotesCast,
				"locked_votes", user.LockedVotes,
			)
			return nil, ErrInconsistentState
		}
	}

	updatedUser, err := scanUser(tx.QueryRowContext(ctx, `
		UPDATE app_user
		SET available_votes = available_votes - $2,
		    locked_votes = locked_votes + $2,
		    updated_at = NOW()
		WHERE fid = $1
		RETURNING `+userColumns+`
	`, fid, delta))
	if err != nil {
		return nil, fmt.Errorf("failed to move user budget: %w", err)
	}

	var updatedAllocation models.Allocation
	err = tx.QueryRowContext(ctx, `
		INSERT INTO allocation (fid, data_point_id, votes_cast)
		VALUES ($1, $2, $3)
		ON CONFLICT (fid, data_point_id)
		DO UPDATE SET votes_cast = $3, updated_at = NOW()
		RETURNING fid, data_point_id, votes_cast, created_at, updated_at
	`, fid, dataPointID, requestedVotes).Scan(
		&updatedAllocation.FID, &updatedAllocation.DataPointID, &updatedAllocation.VotesCast,
		&updatedAllocation.CreatedAt, &updatedAllocation.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert allocation: %w", err)
	}

	updatedDataPoint, err := scanDataPoint(tx.QueryRowContext(ctx, `
		UPDATE data_point
		SET total_votes = total_votes + $2
		WHERE id = $1 AND total_votes + $2 >= 0
		RETURNING `+dataPointColumns+`
	`, dataPointID, delta))
	if err != nil {
		if err == ErrNotFound {
			slog.Error("data point total would go negative",
				"data_point_id", dataPointID, "delta", delta)
			return nil, ErrInconsistentState
		}
		return nil, fmt.Errorf("failed to adjust data point total: %w", err)
	}

	if err := appendHistory(ctx, tx, fid, dataPointID, changeType, delta); err != nil {
		// History is part of the atomic unit, not best-effort telemetry
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.VoteResult{
		User:       *updatedUser,
		DataPoint:  *updatedDataPoint,
		Allocation: updatedAllocation,
		Delta:      delta,
	}, nil
}

// lockUser reads the user row under FOR UPDATE NOWAIT; contention maps to
// ErrBusy rather than blocking
func lockUser(ctx context.Context, tx *sql.Tx, fid int64) (*models.User, error) {
	user, err := scanUser(tx.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM app_user WHERE fid = $1 FOR UPDATE NOWAIT
	`, fid))
	if err != nil {
		if lockNotAvailable(err) {
			return nil, ErrBusy
		}
		return nil, err
	}
	return user, nil
}

// lockAllocation reads the caller's allocation row under lock; an absent
// row is votes_cast = 0
func lockAllocation(ctx context.Context, tx *sql.Tx, fid int64, dataPointID string) (*models.Allocation, error) {
	var a models.Allocation
	err := tx.QueryRowContext(ctx, `
		SELECT fid, data_point_id, votes_cast, created_at, updated_at
		FROM allocation
		WHERE fid = $1 AND data_point_id = $2
		FOR UPDATE NOWAIT
	`, fid, dataPointID).Scan(&a.FID, &a.DataPointID, &a.VotesCast, &a.CreatedAt, &a.UpdatedAt)

	if err == sql.ErrNoRows {
		return &models.Allocation{FID: fid, DataPointID: dataPointID}, nil
	}
	if lockNotAvailable(err) {
		return nil, ErrBusy
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock allocation: %w", err)
	}
	return &a, nil
}
