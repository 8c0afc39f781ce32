// Copyright (c) 2025 Michael Chen.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mchen-dev/powercast/auth"
	"github.com/mchen-dev/powercast/cliparse"
	"github.com/mchen-dev/powercast/ledger"
	"github.com/mchen-dev/powercast/middleware"
)

// sessionFID extracts the caller's fid from the Authorization header,
// writing a 401 response on failure
func sessionFID(w http.ResponseWriter, r *http.Request, cfg cliparse.Config) (int64, bool) {
	fid, err := auth.SessionFID(r.Header.Get("Authorization"), cfg.SessionSecret)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Valid session token required")
		return 0, false
	}
	return fid, true
}

// writeLedgerError maps ledger errors onto HTTP responses. Invariant
// violations are internal defects: logged loudly, surfaced as 500.
func writeLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Not found")
	case errors.Is(err, ledger.ErrBudgetExceeded):
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Requested votes exceed your available budget")
	case errors.Is(err, ledger.ErrBusy):
		middleware.ErrorResponse(w, http.StatusConflict, "Another vote is in flight, retry shortly")
	case errors.Is(err, ledger.ErrStatusFinal):
		middleware.ErrorResponse(w, http.StatusConflict, "Data point is already launched")
	case errors.Is(err, ledger.ErrInconsistentState), errors.Is(err, ledger.ErrInsufficientBudget):
		slog.Error("ledger invariant violated", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Ledger error")
	default:
		slog.Error("ledger operation failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}
