// Copyright (c) 2025 Michael Chen.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/mchen-dev/powercast/cliparse"
	"github.com/mchen-dev/powercast/ledger"
	"github.com/mchen-dev/powercast/middleware"
	"github.com/mchen-dev/powercast/models"
	"github.com/mchen-dev/powercast/talent"
)

type UserHandler struct {
	store  *ledger.Store
	cfg    cliparse.Config
	scores *talent.Client
}

func NewUserHandler(store *ledger.Store, cfg cliparse.Config, scores *talent.Client) *UserHandler {
	return &UserHandler{store: store, cfg: cfg, scores: scores}
}

// Me refreshes the caller's voting power from the score provider and
// returns the resulting budget. Provider failures degrade the inputs to
// zero rather than failing the request; locked votes are never reduced
// by a refresh.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	fid, ok := sessionFID(w, r, h.cfg)
	if !ok {
		return
	}

	builderScore, err := h.scores.BuilderScore(r.Context(), fid)
	if err != nil {
		slog.Warn("builder score unavailable, degrading to zero", "fid", fid, "error", err)
		builderScore = 0
	}
	holdings, err := h.scores.Holdings(r.Context(), fid)
	if err != nil {
		slog.Warn("talent holdings unavailable, degrading to zero", "fid", fid, "error", err)
		holdings = 0
	}

	user, err := h.store.RefreshUser(r.Context(), fid, builderScore, holdings)
	if err != nil {
		slog.Error("voting power refresh failed", "fid", fid, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VotingPowerResponse{
		User: *user,
		Breakdown: models.VotingPowerBreakdown{
			BuilderScore:     builderScore,
			TalentHoldings:   holdings,
			TotalVotingPower: user.TotalVotingPower,
			AvailableVotes:   user.AvailableVotes,
			LockedVotes:      user.LockedVotes,
		},
	})
}

// History returns the caller's vote history, newest first.
func (h *UserHandler) History(w http.ResponseWriter, r *http.Request) {
	fid, ok := sessionFID(w, r, h.cfg)
	if !ok {
		return
	}

	events, err := h.store.History(r.Context(), fid)
	if err != nil {
		slog.Error("history query failed", "fid", fid, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, events)
}
