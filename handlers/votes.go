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
)

type VotingHandler struct {
	store *ledger.Store
	cfg   cliparse.Config
}

func NewVotingHandler(store *ledger.Store, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{store: store, cfg: cfg}
}

// SubmitVote sets the caller's allocation on a data point to the
// requested absolute count. Raising the count locks budget, lowering
// it returns budget; the request states a target, not a delta.
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	h.execute(w, r, "vote")
}

// SubmitRedeem lowers the caller's allocation on a data point,
// returning locked budget. It shares the vote contract: the body
// carries the absolute count to keep on the item.
func (h *VotingHandler) SubmitRedeem(w http.ResponseWriter, r *http.Request) {
	h.execute(w, r, "redeem")
}

func (h *VotingHandler) execute(w http.ResponseWriter, r *http.Request, action string) {
	fid, ok := sessionFID(w, r, h.cfg)
	if !ok {
		return
	}

	dataPointID := r.PathValue("id")
	if dataPointID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Data point ID is required")
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Votes < 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Votes must be zero or positive")
		return
	}

	result, err := h.store.Execute(r.Context(), fid, dataPointID, req.Votes)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	slog.Info("allocation updated",
		"action", action,
		"fid", fid,
		"data_point_id", dataPointID,
		"votes", result.Allocation.VotesCast,
		"delta", result.Delta)
	middleware.JSONResponse(w, http.StatusOK, result)
}
