// Copyright (c) 2025 Michael Chen.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/mchen-dev/powercast/auth"
	"github.com/mchen-dev/powercast/cliparse"
	"github.com/mchen-dev/powercast/ledger"
	"github.com/mchen-dev/powercast/middleware"
	"github.com/mchen-dev/powercast/models"
)

type DataPointHandler struct {
	store *ledger.Store
	cfg   cliparse.Config
}

func NewDataPointHandler(store *ledger.Store, cfg cliparse.Config) *DataPointHandler {
	return &DataPointHandler{store: store, cfg: cfg}
}

func (h *DataPointHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Valid admin key required")
		return false
	}
	return true
}

// Create registers a new data point in the voting stage.
func (h *DataPointHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var req models.CreateDataPointRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.IssuerName = strings.TrimSpace(req.IssuerName)
	if req.Name == "" || req.IssuerName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Name and issuer name are required")
		return
	}
	if req.Pts < 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Pts must be zero or positive")
		return
	}

	id, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("data point ID generation failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "ID generation error")
		return
	}

	dp, err := h.store.CreateDataPoint(r.Context(), &models.DataPoint{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		IssuerName:  req.IssuerName,
		Pts:         req.Pts,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		slog.Error("data point creation failed", "name", req.Name, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("data point created", "data_point_id", dp.ID, "name", dp.Name)
	middleware.JSONResponse(w, http.StatusCreated, models.CreateDataPointResponse{DataPointID: dp.ID})
}

// Advance moves a data point to the next lifecycle stage and snapshots
// each holder's allocation into history.
func (h *DataPointHandler) Advance(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	dataPointID := r.PathValue("id")
	if dataPointID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Data point ID is required")
		return
	}

	dp, snapshots, err := h.store.AdvanceStatus(r.Context(), dataPointID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	slog.Info("data point advanced", "data_point_id", dp.ID, "status", dp.Status, "snapshots", snapshots)
	middleware.JSONResponse(w, http.StatusOK, models.AdvanceStatusResponse{
		DataPointID: dp.ID,
		Status:      dp.Status,
		Snapshots:   snapshots,
	})
}
