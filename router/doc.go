// Copyright (c) 2025 Michael Chen.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the powercast API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Session:

	POST /auth/login - Resolve wallet address to Farcaster identity, mint session token

Caller-scoped (requires Authorization: Bearer token):

	GET /users/me         - Refresh and return voting power budget
	GET /users/me/history - Vote history, newest first

Catalog and voting:

	GET  /datapoints                 - List by tab and lifecycle status
	POST /datapoints/{id}/votes     - Set absolute allocation on a data point
	POST /datapoints/{id}/redeem    - Lower allocation, freeing locked budget

Admin (requires X-Admin-Key):

	POST /datapoints              - Create data point
	POST /datapoints/{id}/advance - Advance lifecycle, snapshot holders

# Handler Initialization

The router builds the ledger store and upstream clients once and injects
them into the handlers:

	store := ledger.NewStore(db)
	scores := talent.NewClient(cfg.TalentAPIURL, cfg.TalentAPIKey)
	identity := farcaster.NewClient(cfg.FarcasterAPIURL)
*/
package router
