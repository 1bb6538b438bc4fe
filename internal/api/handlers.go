// Cordial - Cocktail Catalog and List Management
// Copyright 2026 Cordial Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cordialhq/cordial

package api

import (
	"net/http"
	"time"

	"github.com/cordialhq/cordial/internal/config"
	"github.com/cordialhq/cordial/internal/database"
	"github.com/cordialhq/cordial/internal/lists"
	"github.com/cordialhq/cordial/internal/models"
)

// Handler holds the services behind the HTTP surface.
type Handler struct {
	db        *database.DB
	cfg       *config.Config
	favorites *lists.Favorites
	creations *lists.Creations
	bulk      *lists.BulkEngine
}

// NewHandler creates the API handler and its services.
func NewHandler(db *database.DB, cfg *config.Config) *Handler {
	return &Handler{
		db:        db,
		cfg:       cfg,
		favorites: lists.NewFavorites(db),
		creations: lists.NewCreations(db, cfg.Catalog.AnonymousUser),
		bulk:      lists.NewBulkEngine(db),
	}
}

// Health reports service and database health.
// GET /api/v1/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	httpStatus := http.StatusOK
	if err := h.db.Ping(r.Context()); err != nil {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	respondJSON(w, httpStatus, &models.APIResponse{
		Status: "success",
		Data: map[string]string{
			"status": status,
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthLive is the liveness probe: the process is up.
// GET /api/v1/health/live
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	writeBody(w, http.StatusOK, map[string]string{"status": "alive"})
}

// HealthReady is the readiness probe: the database answers.
// GET /api/v1/health/ready
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		writeBody(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
		return
	}
	writeBody(w, http.StatusOK, map[string]string{"status": "ready"})
}
