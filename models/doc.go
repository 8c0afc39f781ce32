// Copyright (c) 2025 Michael Chen.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the request, response, and domain types shared across
the API.

# Domain Types

The voting ledger revolves around four rows:

  - User: one row per fid, holding the derived voting-power budget split into
    available and locked votes
  - DataPoint: one catalog item with its aggregate total_votes and lifecycle
    status
  - Allocation: the per-(user, data point) vote count; created on first vote,
    updated in place, never deleted (0 means fully redeemed)
  - HistoryEvent: immutable append-only audit record of every vote, redeem,
    and lifecycle snapshot

# Invariants

	available_votes + locked_votes <= total_voting_power
	sum(allocation.votes_cast) per data point == data_point.total_votes

The first can transiently break when the external builder score drops between
refreshes; that is tolerated, not an error.

# Status Lifecycle

Data points progress forward only:

	voting -> to_launch -> launched

# JSON Conventions

All types use snake_case JSON tags. VoteResult returns full post-commit
state so clients never need a follow-up read.
*/
package models
