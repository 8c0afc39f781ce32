// Copyright (c) 2025 Michael Chen.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the powercast API server.

Powercast is a voting front-end for a data point catalog. Each user gets
a voting power budget derived from their Talent Protocol builder score
and token holdings, and allocates it across data points competing to
launch. Votes lock budget, redeems return it, and every change lands in
an immutable history.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... SESSION_SECRET=... ADMIN_KEY_SALT=... go run main.go

Or with flags:

	go run main.go -p 3414 -d "postgres://..." -session-secret ... -admin-salt ...

A .env file in the working directory is loaded at startup; real
environment variables take precedence.

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string
  - SESSION_SECRET (-session-secret): HMAC secret for session tokens
  - ADMIN_KEY_SALT (-admin-salt): Secret for admin key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3414)
  - TALENT_API_URL (-talent-url): Talent Protocol base URL
  - TALENT_API_KEY (-talent-key): Talent Protocol API key; without it
    voting power inputs degrade to zero
  - FARCASTER_API_URL (-farcaster-url): Farcaster API base URL

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (auth, users, voting, catalog, admin)
  - ledger: voting power budget, vote transactions, history, catalog queries
  - talent, farcaster: upstream API clients
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response and domain types
  - auth: Session tokens and admin keys
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
