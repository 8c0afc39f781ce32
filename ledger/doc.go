// Copyright (c) 2025 Michael Chen.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger is the system of record for voting-power accounting.

# Model

Every user carries a budget derived from external signals:

	total_voting_power = floor(builder_score * sqrt(talent_holdings))

split at all times into available_votes (spendable) and locked_votes
(allocated to data points). A vote moves budget from available to locked; a
redeem moves it back. Both are the same operation: Execute sets the absolute
allocation for one (user, data point) pair and derives the signed delta
itself.

# Atomicity

Execute runs as a single database transaction. The user row is locked with
FOR UPDATE NOWAIT, which serializes all budget moves for that user and turns
lock contention into ErrBusy with zero writes. Data point totals are only
ever adjusted by delta, never overwritten, so concurrent votes from
different users on the same item cannot lose updates. The history append is
part of the same transaction: if it fails, the whole vote fails.

# Error Taxonomy

  - ErrNotFound: unknown user or data point
  - ErrBudgetExceeded: requested votes outside the funded range (validation,
    surfaced to the caller)
  - ErrInsufficientBudget, ErrInconsistentState: an invariant would be
    violated; internal defect, logged loudly, nothing committed
  - ErrBusy: row lock contention; safe to retry, because re-submitting the
    same requested allocation converges to the same end state
  - ErrStatusFinal: a launched data point cannot advance further

# History

vote_history is append-only. Lifecycle snapshots (recorded when a data point
advances while a user holds votes on it) are idempotent through a partial
unique index, so running a transition handler twice appends nothing new.
*/
package ledger
