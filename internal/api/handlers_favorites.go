// Cordial - Cocktail Catalog and List Management
// Copyright 2026 Cordial Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cordialhq/cordial

package api

import (
	"errors"
	"net/http"

	"github.com/cordialhq/cordial/internal/auth"
	"github.com/cordialhq/cordial/internal/database"
	"github.com/cordialhq/cordial/internal/logging"
	"github.com/cordialhq/cordial/internal/metrics"
)

// FavoriteToggle flips the current user's favorite for a cocktail.
// POST /cocktails/{cocktailID}/favorite/
//
// Wrong method answers 200 {success:false, error:"POST method required"};
// a missing cocktail is a real 404.
func (h *Handler) FavoriteToggle(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	cocktailID, ok := pathID(w, r, "cocktailID")
	if !ok {
		return
	}
	user := auth.CurrentUser(r.Context())

	result, err := h.favorites.Toggle(r.Context(), user, cocktailID)
	if err != nil {
		if errors.Is(err, database.ErrCocktailNotFound) {
			http.NotFound(w, r)
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Int64("cocktail_id", cocktailID).Msg("Favorite toggle failed")
		writeFailure(w, "Unable to update favorites")
		return
	}

	metrics.RecordFavoriteToggle(result.Action)

	writeBody(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"action":          result.Action,
		"favorited":       result.Favorited,
		"favorites_count": result.FavoritesCount,
		"message":         result.Message,
	})
}
