// Copyright (c) 2025 Michael Chen.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mchen-dev/powercast/auth"
	"github.com/mchen-dev/powercast/cliparse"
	"github.com/mchen-dev/powercast/farcaster"
	"github.com/mchen-dev/powercast/ledger"
	"github.com/mchen-dev/powercast/middleware"
	"github.com/mchen-dev/powercast/models"
)

type AuthHandler struct {
	store    *ledger.Store
	cfg      cliparse.Config
	identity *farcaster.Client
}

func NewAuthHandler(store *ledger.Store, cfg cliparse.Config, identity *farcaster.Client) *AuthHandler {
	return &AuthHandler{store: store, cfg: cfg, identity: identity}
}

// Login resolves a verified wallet address to a Farcaster profile,
// upserts it, and mints a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	address := strings.TrimSpace(req.Address)
	if address == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Address is required")
		return
	}

	profile, err := h.identity.UserByVerification(r.Context(), address)
	if err != nil {
		if errors.Is(err, farcaster.ErrNoUser) {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "No Farcaster account verifies this address")
			return
		}
		slog.Error("identity lookup failed", "address", address, "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Identity service unavailable")
		return
	}

	user, err := h.store.UpsertProfile(r.Context(), profile.FID, profile.Username, profile.DisplayName, profile.AvatarURL)
	if err != nil {
		slog.Error("profile upsert failed", "fid", profile.FID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	token, err := auth.NewSessionToken(user.FID, h.cfg.SessionSecret)
	if err != nil {
		slog.Error("session token mint failed", "fid", user.FID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Session error")
		return
	}

	slog.Info("user logged in", "fid", user.FID, "username", user.Username)
	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		SessionToken: token,
		User:         *user,
	})
}
