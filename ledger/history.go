// Copyright (c) 2025 Michael Chen.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/mchen-dev/powercast/models"
)

// appendHistory writes one immutable event inside the caller's transaction
func appendHistory(ctx context.Context, tx *sql.Tx, fid int64, dataPointID, changeType string, delta int64) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO vote_history (id, fid, data_point_id, change_type, delta)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.NewString(), fid, dataPointID, changeType, delta)
	if err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}
	return nil
}

// HasSnapshot reports whether any event of the given change types exists
// for the (user, data point) pair. Existence only - the read model never
// counts snapshots, which keeps double-appended markers harmless.
func (s *Store) HasSnapshot(ctx context.Context, fid int64, dataPointID string, changeTypes ...string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM vote_history
			WHERE fid = $1 AND data_point_id = $2 AND change_type = ANY($3)
		)
	`, fid, dataPointID, pq.Array(changeTypes)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check snapshot: %w", err)
	}
	return exists, nil
}

// History returns a user's audit trail, newest first
func (s *Store) History(ctx context.Context, fid int64) ([]models.HistoryEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, fid, data_point_id, change_type, delta, created_at
		FROM vote_history
		WHERE fid = $1
		ORDER BY created_at DESC, id
	`, fid)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	events := []models.HistoryEvent{}
	for rows.Next() {
		var e models.HistoryEvent
		if err := rows.Scan(&e.ID, &e.FID, &e.DataPointID, &e.ChangeType, &e.Delta, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// AdvanceStatus moves a data point one step forward in its lifecycle
// (voting -> to_launch -> launched, never backward) and appends a
// zero-delta snapshot event for every user currently holding votes on it.
// The snapshots are audit markers, not budget moves, and the whole
// operation is idempotent: re-running a transition that already happened
// appends nothing.
//
// Returns the updated data point and the number of snapshots appended.
func (s *Store) AdvanceStatus(ctx context.Context, dataPointID string) (*models.DataPoint, int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRowContext(ctx, `
		SELECT status FROM data_point WHERE id = $1 FOR UPDATE NOWAIT
	`, dataPointID).Scan(&status)
	if err == sql.ErrNoRows {
		return nil, 0, ErrNotFound
	}
	if lockNotAvailable(err) {
		return nil, 0, ErrBusy
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to lock data point: %w", err)
	}

	var next, snapshotType string
	switch status {
	case models.StatusVoting:
		next, snapshotType = models.StatusToLaunch, models.ChangeSnapshotToLaunch
	case models.StatusToLaunch:
		next, snapshotType = models.StatusLaunched, models.ChangeSnapshotToLaunched
	default:
		return nil, 0, ErrStatusFinal
	}

	dataPoint, err := scanDataPoint(tx.QueryRowContext(ctx, `
		UPDATE data_point SET status = $2 WHERE id = $1
		RETURNING `+dataPointColumns+`
	`, dataPointID, next))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to advance status: %w", err)
	}

	holders, err := tx.QueryContext(ctx, `
		SELECT fid FROM allocation WHERE data_point_id = $1 AND votes_cast > 0
	`, dataPointID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query holders: %w", err)
	}
	defer holders.Close()

	var fids []int64
	for holders.Next() {
		var fid int64
		if err := holders.Scan(&fid); err != nil {
			return nil, 0, fmt.Errorf("failed to scan holder: %w", err)
		}
		fids = append(fids, fid)
	}
	if err := holders.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate holders: %w", err)
	}

	var appended int64
	for _, fid := range fids {
		// The partial unique index absorbs duplicate snapshots
		res, err := tx.ExecContext(ctx, `
			INSERT INTO vote_history (id, fid, data_point_id, change_type, delta)
			VALUES ($1, $2, $3, $4, 0)
			ON CONFLICT DO NOTHING
		`, uuid.NewString(), fid, dataPointID, snapshotType)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to append snapshot: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, 0, fmt.Errorf("failed to read rows affected: %w", err)
		}
		appended += n
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return dataPoint, appended, nil
}
