// Cordial - Cocktail Catalog and List Management
// Copyright 2026 Cordial Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cordialhq/cordial

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/cordialhq/cordial/internal/auth"
	"github.com/cordialhq/cordial/internal/database"
	"github.com/cordialhq/cordial/internal/logging"
	"github.com/cordialhq/cordial/internal/metrics"
	"github.com/cordialhq/cordial/internal/models"
	"github.com/cordialhq/cordial/internal/validation"
)

type listForm struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	IsEditable  *bool  `json:"is_editable"`
	IsDeletable *bool  `json:"is_deletable"`
}

// writeFormErrors reports validation failures field by field, the shape the
// list forms consume.
func writeFormErrors(w http.ResponseWriter, fieldErrors map[string][]string) {
	writeBody(w, http.StatusOK, map[string]interface{}{
		"success": false,
		"errors":  fieldErrors,
	})
}

func singleFieldError(field, message string) map[string][]string {
	return map[string][]string{field: {message}}
}

// ListCreate creates a custom list for the current user.
// POST /lists/create/
func (h *Handler) ListCreate(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var form listForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeFailure(w, "Invalid JSON data")
		return
	}
	if verr := validation.ValidateStruct(&form); verr != nil {
		writeFormErrors(w, verr.FieldErrors())
		return
	}

	// Custom lists default to fully mutable; the form may opt out.
	editable, deletable := true, true
	if form.IsEditable != nil {
		editable = *form.IsEditable
	}
	if form.IsDeletable != nil {
		deletable = *form.IsDeletable
	}

	user := auth.CurrentUser(r.Context())
	list, err := h.db.CreateList(r.Context(), user, form.Name, form.Description, models.ListTypeCustom, editable, deletable)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateName) {
			writeFormErrors(w, singleFieldError("name", "You already have a list with this name"))
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Str("name", sanitizeLogValue(form.Name)).Msg("List creation failed")
		writeFailure(w, "Unable to create list")
		return
	}

	metrics.RecordListCreated(string(list.Type))

	writeBody(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"list":    list,
	})
}

// ListEdit shows or updates a list.
// GET|POST /lists/{listID}/edit/
//
// This is a page-adjacent endpoint: a non-owner is redirected away rather
// than given a JSON refusal, unlike the bulk endpoints.
func (h *Handler) ListEdit(w http.ResponseWriter, r *http.Request) {
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

	user := auth.CurrentUser(r.Context())
	if !list.OwnedBy(user) {
		http.Redirect(w, r, "/lists/", http.StatusFound)
		return
	}

	if r.Method == http.MethodGet {
		writeBody(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"list":    list,
		})
		return
	}
	if r.Method != http.MethodPost {
		writeFailure(w, "POST method required")
		return
	}

	var form listForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeFailure(w, "Invalid JSON data")
		return
	}
	if verr := validation.ValidateStruct(&form); verr != nil {
		writeFormErrors(w, verr.FieldErrors())
		return
	}

	updated, err := h.db.UpdateList(r.Context(), list.ID, form.Name, form.Description)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrListNotEditable):
			writeFormErrors(w, singleFieldError("name", "This list cannot be renamed"))
		case errors.Is(err, database.ErrDuplicateName):
			writeFormErrors(w, singleFieldError("name", "You already have a list with this name"))
		default:
			logging.Ctx(r.Context()).Error().Err(err).Int64("list_id", list.ID).Msg("List update failed")
			writeFailure(w, "Unable to update list")
		}
		return
	}

	writeBody(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"list":    updated,
	})
}

// ListDelete removes a deletable list the current user owns.
// POST /lists/{listID}/delete/
func (h *Handler) ListDelete(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
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

	user := auth.CurrentUser(r.Context())
	if !list.OwnedBy(user) {
		http.Redirect(w, r, "/lists/", http.StatusFound)
		return
	}

	if err := h.db.DeleteList(r.Context(), list.ID); err != nil {
		if errors.Is(err, database.ErrListNotDeletable) {
			writeFailure(w, "This list cannot be deleted")
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Int64("list_id", list.ID).Msg("List deletion failed")
		writeFailure(w, "Unable to delete list")
		return
	}

	writeBody(w, http.StatusOK, map[string]interface{}{"success": true})
}

// ListIndex returns the current user's lists with member counts, system
// lists first.
// GET /lists/
func (h *Handler) ListIndex(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	user := auth.CurrentUser(r.Context())

	start := time.Now()
	userLists, err := h.db.ListsByCreator(r.Context(), user)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("List index query failed")
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to retrieve lists", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   userLists,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// ListDetail returns one of the current user's lists with its members.
// GET /lists/{listID}/
func (h *Handler) ListDetail(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
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
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to retrieve list", err)
		return
	}

	user := auth.CurrentUser(r.Context())
	if !list.OwnedBy(user) {
		http.Redirect(w, r, "/lists/", http.StatusFound)
		return
	}

	members, err := h.db.Members(r.Context(), list.ID)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Int64("list_id", list.ID).Msg("Member query failed")
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to retrieve list members", err)
		return
	}

	writeBody(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"list":    models.ListDetail{List: *list, Members: members},
	})
}
