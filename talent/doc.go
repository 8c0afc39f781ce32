// Copyright (c) 2025 Michael Chen.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package talent is the read-only client for the external reputation provider.

Two signals back a user's voting power:

  - BuilderScore: the provider's reputation score for a fid
  - Holdings: the token balance for the same fid

Both are fetched fresh on every voting-power read. The provider is a
collaborator, not a dependency the vote path can block on: when a fetch
fails, callers substitute 0 and keep serving (degraded-but-available), and
voting against already-funded budget proceeds regardless.

Requests carry the X-API-KEY header and a per-request context timeout.
*/
package talent
