// Copyright (c) 2025 Michael Chen.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package handlers implements the HTTP surface of the powercast API.
//
// # Handler Groups
//
//   - AuthHandler: wallet login via Farcaster verification lookup,
//     session token minting (POST /auth/login)
//   - UserHandler: voting power refresh and budget readout
//     (GET /users/me), vote history (GET /users/me/history)
//   - VotingHandler: vote and redeem submission against a data point
//     (POST /datapoints/{id}/votes, POST /datapoints/{id}/redeem)
//   - CatalogHandler: tab and status filtered data point listings
//     (GET /datapoints)
//   - DataPointHandler: admin-keyed data point creation and lifecycle
//     advancement (POST /datapoints, POST /datapoints/{id}/advance)
//
// # Conventions
//
// Each handler is a struct holding a *ledger.Store, the parsed config,
// and any upstream client it needs, built by a NewXHandler constructor.
// Responses go through middleware.JSONResponse / ErrorResponse so every
// body is JSON. Session identity travels as a bearer token in the
// Authorization header; admin operations authenticate with the
// X-Admin-Key header instead and carry no user identity.
//
// # Error Mapping
//
// Ledger errors map to HTTP statuses in one place (writeLedgerError):
// ErrNotFound is 404, ErrBudgetExceeded is 422, ErrBusy and
// ErrStatusFinal are 409, and invariant violations are 500 after an
// error-level log entry. Malformed input is 400 and a missing or bad
// session token is 401.
package handlers
