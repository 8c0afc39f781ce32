// Copyright (c) 2025 Michael Chen.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/mchen-dev/powercast/cliparse"
	"github.com/mchen-dev/powercast/farcaster"
	"github.com/mchen-dev/powercast/handlers"
	"github.com/mchen-dev/powercast/ledger"
	"github.com/mchen-dev/powercast/middleware"
	"github.com/mchen-dev/powercast/talent"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	store := ledger.NewStore(db)
	scores := talent.NewClient(cfg.TalentAPIURL, cfg.TalentAPIKey)
	identity := farcaster.NewClient(cfg.FarcasterAPIURL)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(store, cfg, identity)
	userHandler := handlers.NewUserHandler(store, cfg, scores)
	votingHandler := handlers.NewVotingHandler(store, cfg)
	catalogHandler := handlers.NewCatalogHandler(store, cfg)
	dataPointHandler := handlers.NewDataPointHandler(store, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Session establishment
	mux.HandleFunc("POST /auth/login", middleware.WithLogging(authHandler.Login))

	// Caller-scoped views
	mux.HandleFunc("GET /users/me", middleware.WithLogging(userHandler.Me))
	mux.HandleFunc("GET /users/me/history", middleware.WithLogging(userHandler.History))

	// Catalog and voting
	mux.HandleFunc("GET /datapoints", middleware.WithLogging(catalogHandler.List))
	mux.HandleFunc("POST /datapoints/{id}/votes", middleware.WithLogging(votingHandler.SubmitVote))
	mux.HandleFunc("POST /datapoints/{id}/redeem", middleware.WithLogging(votingHandler.SubmitRedeem))

	// Admin operations
	mux.HandleFunc("POST /datapoints", middleware.WithLogging(dataPointHandler.Create))
	mux.HandleFunc("POST /datapoints/{id}/advance", middleware.WithLogging(dataPointHandler.Advance))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("powercast API v1"))
	})

	return mux
}
