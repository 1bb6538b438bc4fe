// Cordial - Cocktail Catalog and List Management
// Copyright 2026 Cordial Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cordialhq/cordial

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/cordialhq/cordial/internal/logging"
	"github.com/cordialhq/cordial/internal/models"
)

// sanitizeLogValue strips control characters from user-supplied values
// before they reach a log line.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends an envelope response for the /api/v1 endpoints.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError sends an envelope error for the /api/v1 endpoints.
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	if err != nil {
		logging.Error().Str("code", sanitizeLogValue(code)).Str("error", sanitizeLogValue(err.Error())).Msg("API Error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status: "error",
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
		Error: &models.APIError{
			Code:    code,
			Message: message,
		},
	})
}

// writeBody sends a bare JSON object. The list endpoints use this instead of
// the envelope; their response shape is part of the frontend contract.
func writeBody(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// writeFailure sends the list-endpoint refusal shape: HTTP 200 with
// success:false and the gate's message.
func writeFailure(w http.ResponseWriter, message string) {
	writeBody(w, http.StatusOK, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

// requirePost gates the mutating list endpoints. A wrong method is an
// application-level refusal, not a transport 405.
func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		writeFailure(w, "POST method required")
		return false
	}
	return true
}

// requireGet is the read-endpoint counterpart of requirePost. The routes are
// registered for all methods so the auth middleware can redirect before any
// method check; the gate runs here instead.
func requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		writeFailure(w, "GET method required")
		return false
	}
	return true
}

// pathID parses a numeric chi URL parameter. ok is false after a 404 has
// been written.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return 0, false
	}
	return id, true
}
