// Copyright (c) 2025 Michael Chen.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides session token and admin key handling.

# Session Tokens

Sessions are HS256-signed tokens minted at login, carrying the fid as the
subject claim with a 24 hour expiry:

	token, err := auth.NewSessionToken(fid, cfg.SessionSecret)

Handlers recover the caller's fid from the Authorization header:

	fid, err := auth.SessionFID(r.Header.Get("Authorization"), cfg.SessionSecret)

The fid is the only load-bearing claim; profile fields travel in the
response body, never in the token.

# Admin Keys

Administrative operations (creating data points, advancing lifecycle status)
use a deterministic HMAC key derived from ADMIN_KEY_SALT, validated with a
constant-time comparison:

	if err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), cfg.AdminKeySalt); err != nil {
		// reject
	}

# IDs

GenerateID produces random hex identifiers from crypto/rand for data points.
History events use UUIDs (see the ledger package).
*/
package auth
