// Cordial - Cocktail Catalog and List Management
// Copyright 2026 Cordial Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cordialhq/cordial

package api

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/cordialhq/cordial/internal/auth"
	"github.com/cordialhq/cordial/internal/database"
	"github.com/cordialhq/cordial/internal/lists"
	"github.com/cordialhq/cordial/internal/logging"
	"github.com/cordialhq/cordial/internal/metrics"
)

type bulkRequest struct {
	Operation    string  `json:"operation"`
	CocktailIDs  []int64 `json:"cocktail_ids"`
	TargetListID *int64  `json:"target_list_id"`
}

// Bulk runs a bulk membership operation against a source list.
// POST /lists/{listID}/bulk/
//
// Gate order matters: method, then source existence (404 before the body is
// even read), then payload, then the ownership and operation gates inside
// the engine. Everything except authentication and the missing source
// travels as HTTP 200 with success:false.
func (h *Handler) Bulk(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	listID, ok := pathID(w, r, "listID")
	if !ok {
		return
	}

	if _, err := h.db.GetList(r.Context(), listID); err != nil {
		if errors.Is(err, database.ErrListNotFound) {
			http.NotFound(w, r)
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Int64("list_id", listID).Msg("Bulk source lookup failed")
		writeFailure(w, "Unable to process request")
		return
	}

	var req bulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, "Invalid JSON data")
		return
	}

	user := auth.CurrentUser(r.Context())
	result, err := h.bulk.Execute(r.Context(), user, listID, req.Operation, req.CocktailIDs, req.TargetListID)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Int64("list_id", listID).Msg("Bulk operation failed")
		writeFailure(w, "Unable to process request")
		return
	}

	switch result.Failure {
	case lists.FailureNone:
		metrics.RecordBulkOperation(req.Operation, "success")
		writeBody(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": result.Message,
		})
	case lists.FailureNotFound:
		// The source existed a moment ago; it can vanish between the gate
		// and the engine's own lookup.
		http.NotFound(w, r)
	default:
		metrics.RecordBulkOperation(req.Operation, "refused")
		writeFailure(w, result.Error)
	}
}

// MemberAdd adds one cocktail to a list the current user owns.
// POST /cocktails/{cocktailID}/lists/{listID}/add/
func (h *Handler) MemberAdd(w http.ResponseWriter, r *http.Request) {
	h.memberMutation(w, r, false)
}

// MemberRemove removes one cocktail from a list the current user owns.
// POST /cocktails/{cocktailID}/lists/{listID}/remove/
func (h *Handler) MemberRemove(w http.ResponseWriter, r *http.Request) {
	h.memberMutation(w, r, true)
}

// memberMutation is the shared single-item add/remove path. Both are
// idempotent set operations behind the same ownership gate as bulk.
func (h *Handler) memberMutation(w http.ResponseWriter, r *http.Request, remove bool) {
	if !requirePost(w, r) {
		return
	}
	cocktailID, ok := pathID(w, r, "cocktailID")
	if !ok {
		return
	}
	listID, ok := pathID(w, r, "listID")
	if !ok {
		return
	}

	list, err := h.db.GetList(r.Context(), listID)
	if err != nil {
		if errors.Is(err, database.ErrListNotFound) {
			http.NotFound(w, r)
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Int64("list_id", listID).Msg("List lookup failed")
		writeFailure(w, "Unable to process request")
		return
	}
	if _, err := h.db.GetCocktail(r.Context(), cocktailID); err != nil {
		if errors.Is(err, database.ErrCocktailNotFound) {
			http.NotFound(w, r)
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Int64("cocktail_id", cocktailID).Msg("Cocktail lookup failed")
		writeFailure(w, "Unable to process request")
		return
	}

	user := auth.CurrentUser(r.Context())
	if !list.OwnedBy(user) {
		writeFailure(w, "Permission denied")
		return
	}

	if remove {
		err = h.db.RemoveMember(r.Context(), list.ID, cocktailID)
	} else {
		err = h.db.AddMember(r.Context(), list.ID, cocktailID)
	}
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).
			Int64("list_id", list.ID).
			Int64("cocktail_id", cocktailID).
			Bool("remove", remove).
			Msg("Membership mutation failed")
		writeFailure(w, "Unable to process request")
		return
	}

	writeBody(w, http.StatusOK, map[string]interface{}{"success": true})
}
