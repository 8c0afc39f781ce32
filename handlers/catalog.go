// Copyright (c) 2025 Michael Chen.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/mchen-dev/powercast/auth"
	"github.com/mchen-dev/powercast/cliparse"
	"github.com/mchen-dev/powercast/ledger"
	"github.com/mchen-dev/powercast/middleware"
	"github.com/mchen-dev/powercast/models"
)

type CatalogHandler struct {
	store *ledger.Store
	cfg   cliparse.Config
}

func NewCatalogHandler(store *ledger.Store, cfg cliparse.Config) *CatalogHandler {
	return &CatalogHandler{store: store, cfg: cfg}
}

// List returns data points for one lifecycle status, annotated with the
// caller's own votes. The vote tab works without a session (my_votes
// comes back zero); the my_votes tab requires one.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	tab := r.URL.Query().Get("tab")
	if tab == "" {
		tab = models.TabVote
	}
	if tab != models.TabVote && tab != models.TabMyVotes {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Tab must be 'vote' or 'my_votes'")
		return
	}

	status := r.URL.Query().Get("status")
	if status == "" {
		status = models.StatusVoting
	}
	if status != models.StatusVoting && status != models.StatusToLaunch && status != models.StatusLaunched {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Status must be 'voting', 'to_launch' or 'launched'")
		return
	}

	var fid int64
	if header := r.Header.Get("Authorization"); header != "" || tab == models.TabMyVotes {
		var err error
		fid, err = auth.SessionFID(header, h.cfg.SessionSecret)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Valid session token required")
			return
		}
	}

	views, err := h.store.Catalog(r.Context(), fid, tab, status)
	if err != nil {
		slog.Error("catalog query failed", "tab", tab, "status", status, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, views)
}
