// Copyright (c) 2025 Michael Chen.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3414)
  - DatabaseURL: PostgreSQL connection string (required)
  - SessionSecret: Secret for session token signing (required)
  - AdminKeySalt: Secret for admin key HMAC (required)
  - TalentAPIURL: Builder score provider base URL
  - TalentAPIKey: Builder score provider API key (optional; scores degrade
    to 0 without it)
  - FarcasterAPIURL: Identity provider base URL

# CLI Flags

	-p               Server port
	-d               Database URL
	--talent-url     Talent score API base URL
	--farcaster-url  Farcaster identity API base URL
	--session-secret Session token secret
	--admin-salt     Admin key salt
	--talent-key     Talent API key

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p
	DATABASE_URL      → -d
	TALENT_API_URL    → --talent-url
	FARCASTER_API_URL → --farcaster-url
	SESSION_SECRET    → --session-secret
	ADMIN_KEY_SALT    → --admin-salt
	TALENT_API_KEY    → --talent-key

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - SESSION_SECRET must be provided
  - ADMIN_KEY_SALT must be provided

The upstream URLs default to the public provider endpoints, and the Talent
API key may be omitted in degraded deployments.
*/
package cliparse
