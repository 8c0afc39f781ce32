// Copyright (c) 2025 Michael Chen.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"fmt"

	"github.com/mchen-dev/powercast/models"
)

// snapshotTypeFor maps a catalog status filter to the snapshot event the
// my_votes tab should match on
func snapshotTypeFor(status string) string {
	switch status {
	case models.StatusToLaunch:
		return models.ChangeSnapshotToLaunch
	case models.StatusLaunched:
		return models.ChangeSnapshotToLaunched
	default:
		return ""
	}
}

// Catalog returns the data point list for one tab and status filter, joined
// with the caller's own allocations and snapshot flags. Pure read.
//
// The vote tab shows everything in the requested status. The my_votes tab
// narrows further: for voting status, items the caller currently holds
// votes on; for to_launch/launched, items with the matching lifecycle
// snapshot for the caller (current allocation is irrelevant there - the
// snapshot records that a position existed at transition time).
//
// Order is total votes descending, ties broken by insertion order, so the
// listing is stable and deterministic.
func (s *Store) Catalog(ctx context.Context, fid int64, mainTab, statusFilter string) ([]models.DataPointView, error) {
	snapshotType := snapshotTypeFor(statusFilter)

	query := `
		SELECT d.id, d.name, d.description, d.issuer_name, d.pts, d.image_url,
		       d.total_votes, d.status, d.created_at,
		       COALESCE(a.votes_cast, 0),
		       EXISTS(
		           SELECT 1 FROM vote_history h
		           WHERE h.fid = $1 AND h.data_point_id = d.id AND h.change_type = $3
		       )
		FROM data_point d
		LEFT JOIN allocation a ON a.data_point_id = d.id AND a.fid = $1
		WHERE d.status = $2`

	if mainTab == models.TabMyVotes {
		if statusFilter == models.StatusVoting {
			query += ` AND COALESCE(a.votes_cast, 0) > 0`
		} else {
			query += ` AND EXISTS(
				SELECT 1 FROM vote_history h
				WHERE h.fid = $1 AND h.data_point_id = d.id AND h.change_type = $3
			)`
		}
	}

	query += `
		ORDER BY d.total_votes DESC, d.position ASC`

	rows, err := s.db.QueryContext(ctx, query, fid, statusFilter, snapshotType)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer rows.Close()

	views := []models.DataPointView{}
	for rows.Next() {
		var v models.DataPointView
		err := rows.Scan(
			&v.ID, &v.Name, &v.Description, &v.IssuerName, &v.Pts, &v.ImageURL,
			&v.TotalVotes, &v.Status, &v.CreatedAt,
			&v.MyVotes, &v.SnapshotTaken,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan catalog row: %w", err)
		}
		views = append(views, v)
	}
	return views, rows.Err()
}
