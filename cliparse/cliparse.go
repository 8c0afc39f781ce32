package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port            int
	DatabaseURL     string
	SessionSecret   string
	AdminKeySalt    string
	TalentAPIURL    string
	TalentAPIKey    string
	FarcasterAPIURL string
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("powercast", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")

	// Upstream providers
	fs.StringVar(&cfg.TalentAPIURL, "talent-url", "", "Talent score API base URL")
	fs.StringVar(&cfg.FarcasterAPIURL, "farcaster-url", "", "Farcaster identity API base URL")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SessionSecret, "session-secret", "", "Session token secret (prefer env)")
	fs.StringVar(&cfg.AdminKeySalt, "admin-salt", "", "Admin key salt (prefer env)")
	fs.StringVar(&cfg.TalentAPIKey, "talent-key", "", "Talent API key (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3414 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.TalentAPIURL == "" {
		cfg.TalentAPIURL = os.Getenv("TALENT_API_URL")
		if cfg.TalentAPIURL == "" {
			cfg.TalentAPIURL = "https://api.talentprotocol.com"
		}
	}
	if cfg.FarcasterAPIURL == "" {
		cfg.FarcasterAPIURL = os.Getenv("FARCASTER_API_URL")
		if cfg.FarcasterAPIURL == "" {
			cfg.FarcasterAPIURL = "https://api.farcaster.xyz"
		}
	}

	// Secrets - MUST be provided
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	}
	if cfg.SessionSecret == "" {
		return Config{}, errors.New("SESSION_SECRET required")
	}

	if cfg.AdminKeySalt == "" {
		cfg.AdminKeySalt = os.Getenv("ADMIN_KEY_SALT")
	}
	if cfg.AdminKeySalt == "" {
		return Config{}, errors.New("ADMIN_KEY_SALT required")
	}

	if cfg.TalentAPIKey == "" {
		cfg.TalentAPIKey = os.Getenv("TALENT_API_KEY")
	}

	return cfg, nil
}
