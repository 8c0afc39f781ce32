// Copyright (c) 2025 Michael Chen.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrNotFound means the user or data point does not exist
	ErrNotFound = errors.New("not found")

	// ErrBudgetExceeded means the requested allocation cannot be funded from
	// the caller's available votes plus their current allocation
	ErrBudgetExceeded = errors.New("requested votes exceed funded budget")

	// ErrInsufficientBudget means a delta adjustment would drive a budget
	// field negative; an internal defect, never caused by valid input
	ErrInsufficientBudget = errors.New("budget adjustment would go negative")

	// ErrInconsistentState means the ledger invariants do not hold (e.g. an
	// allocation larger than the user's locked votes); repair condition
	ErrInconsistentState = errors.New("ledger state is inconsistent")

	// ErrBusy means another transaction holds the row lock; safe to retry
	ErrBusy = errors.New("ledger row is locked by another operation")

	// ErrStatusFinal means the data point is already launched
	ErrStatusFinal = errors.New("data point status cannot advance further")
)

// lockNotAvailable reports whether err is Postgres error 55P03, raised by
// FOR UPDATE NOWAIT when the row is already locked
func lockNotAvailable(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "55P03"
}
