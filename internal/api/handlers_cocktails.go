// Cordial - Cocktail Catalog and List Management
// Copyright 2026 Cordial Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cordialhq/cordial

package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/cordialhq/cordial/internal/auth"
	"github.com/cordialhq/cordial/internal/database"
	"github.com/cordialhq/cordial/internal/logging"
	"github.com/cordialhq/cordial/internal/models"
	"github.com/cordialhq/cordial/internal/validation"
)

const (
	defaultBrowseLimit = 50
	maxBrowseLimit     = 200
)

// browseFilter builds the storage filter from query parameters.
func browseFilter(r *http.Request) database.BrowseFilter {
	sort := models.CocktailSort(r.URL.Query().Get("sort"))
	if !sort.Valid() {
		sort = models.SortNewest
	}

	limit := defaultBrowseLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = min(n, maxBrowseLimit)
		}
	}
	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			offset = n
		}
	}

	return database.BrowseFilter{
		Query:  r.URL.Query().Get("q"),
		Sort:   sort,
		Limit:  limit,
		Offset: offset,
	}
}

// CocktailBrowse lists cocktails with search and sorting. sort=popular uses
// the favorites-popularity ordering, which excludes never-favorited
// cocktails entirely.
// GET /cocktails/
func (h *Handler) CocktailBrowse(w http.ResponseWriter, r *http.Request) {
	filter := browseFilter(r)
	start := time.Now()

	var data interface{}
	var err error
	if filter.Sort == models.SortPopular {
		data, err = h.db.MostFavorited(r.Context(), filter)
	} else {
		data, err = h.db.BrowseCocktails(r.Context(), filter)
	}
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("sort", string(filter.Sort)).Msg("Cocktail browse failed")
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to retrieve cocktails", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

type cocktailForm struct {
	Name         string `json:"name" validate:"required,max=200"`
	Description  string `json:"description" validate:"max=1000"`
	Instructions string `json:"instructions" validate:"max=5000"`
}

// CocktailCreate creates a cocktail owned by the current user and records
// it in their creations list.
// POST /cocktails/
func (h *Handler) CocktailCreate(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var form cocktailForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeFailure(w, "Invalid JSON data")
		return
	}
	if verr := validation.ValidateStruct(&form); verr != nil {
		writeFormErrors(w, verr.FieldErrors())
		return
	}

	user := auth.CurrentUser(r.Context())
	cocktail, err := h.db.CreateCocktail(r.Context(), user, form.Name, form.Description, form.Instructions)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("name", sanitizeLogValue(form.Name)).Msg("Cocktail creation failed")
		writeFailure(w, "Unable to create cocktail")
		return
	}

	if err := h.creations.OnCreate(r.Context(), cocktail); err != nil {
		// The cocktail exists; the creations list will converge on the next
		// resync. Surfacing a failure here would orphan the successful write.
		logging.Ctx(r.Context()).Error().Err(err).Int64("cocktail_id", cocktail.ID).Msg("Creations sync failed on create")
	}

	writeBody(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"cocktail": cocktail,
	})
}

// CocktailAnonymize reassigns a cocktail from its owner to the sentinel
// anonymous account and removes it from the owner's creations list.
// POST /cocktails/{cocktailID}/anonymize/
func (h *Handler) CocktailAnonymize(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	cocktailID, ok := pathID(w, r, "cocktailID")
	if !ok {
		return
	}

	cocktail, err := h.db.GetCocktail(r.Context(), cocktailID)
	if err != nil {
		if errors.Is(err, database.ErrCocktailNotFound) {
			http.NotFound(w, r)
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Int64("cocktail_id", cocktailID).Msg("Cocktail lookup failed")
		writeFailure(w, "Unable to process request")
		return
	}

	user := auth.CurrentUser(r.Context())
	if cocktail.Creator != user {
		writeFailure(w, "Permission denied")
		return
	}

	oldOwner := cocktail.Creator
	reassigned, err := h.db.ReassignCreator(r.Context(), cocktail.ID, h.cfg.Catalog.AnonymousUser)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Int64("cocktail_id", cocktail.ID).Msg("Anonymization failed")
		writeFailure(w, "Unable to anonymize cocktail")
		return
	}

	if err := h.creations.OnOwnerReassigned(r.Context(), reassigned, oldOwner); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Int64("cocktail_id", cocktail.ID).Msg("Creations sync failed on reassignment")
	}

	writeBody(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"cocktail": reassigned,
	})
}
