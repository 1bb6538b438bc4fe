// Cordial - Cocktail Catalog and List Management
// Copyright 2026 Cordial Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cordialhq/cordial

package lists

import (
	"context"
	"fmt"

	"github.com/cordialhq/cordial/internal/database"
	"github.com/cordialhq/cordial/internal/logging"
	"github.com/cordialhq/cordial/internal/models"
)

// Toggle actions.
const (
	ActionAdded   = "added"
	ActionRemoved = "removed"
)

// ToggleResult is the outcome of one favorite toggle.
type ToggleResult struct {
	Action         string `json:"action"`
	Favorited      bool   `json:"favorited"`
	FavoritesCount int    `json:"favorites_count"`
	Message        string `json:"message"`
}

// Favorites toggles cocktails in and out of a user's favorites list. The
// list itself is created lazily on the first toggle.
type Favorites struct {
	db *database.DB
}

// NewFavorites creates the favorites service.
func NewFavorites(db *database.DB) *Favorites {
	return &Favorites{db: db}
}

// Toggle flips the membership of cocktailID in user's favorites list and
// returns the resulting state. Two toggles in a row restore the original
// membership and count. Fails with database.ErrCocktailNotFound when the
// cocktail does not exist.
func (s *Favorites) Toggle(ctx context.Context, user string, cocktailID int64) (*ToggleResult, error) {
	cocktail, err := s.db.GetCocktail(ctx, cocktailID)
	if err != nil {
		return nil, err
	}

	list, err := s.db.GetOrCreateSystemList(ctx, user, models.ListTypeFavorites)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve favorites list: %w", err)
	}

	favorited, count, err := s.db.ToggleMember(ctx, list.ID, cocktailID)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle favorite: %w", err)
	}

	result := &ToggleResult{
		Favorited:      favorited,
		FavoritesCount: count,
	}
	if favorited {
		result.Action = ActionAdded
		result.Message = fmt.Sprintf("Added %s to your favorites", cocktail.Name)
	} else {
		result.Action = ActionRemoved
		result.Message = fmt.Sprintf("Removed %s from your favorites", cocktail.Name)
	}

	logging.Ctx(ctx).Debug().
		Str("user", user).
		Int64("cocktail_id", cocktailID).
		Str("action", result.Action).
		Int("favorites_count", count).
		Msg("Favorite toggled")

	return result, nil
}
