// Cordial - Cocktail Catalog and List Management
// Copyright 2026 Cordial Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cordialhq/cordial

package models

import (
	"time"
)

// Cocktail is a catalog recipe. Only the fields the list subsystem needs are
// modeled here; authoring details (ingredients, images, flavor tags) live in
// the recipe subsystem.
type Cocktail struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Instructions string    `json:"instructions,omitempty"`
	Creator      string    `json:"creator"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PopularCocktail is a cocktail annotated with its favorites count, produced
// by the popularity query. Cocktails favorited by nobody never appear in the
// result set.
type PopularCocktail struct {
	Cocktail
	FavoritesCount int `json:"favorites_count"`
}

// CocktailSort selects the ordering for cocktail browsing.
type CocktailSort string

const (
	// SortNewest orders by creation time descending (default).
	SortNewest CocktailSort = "newest"
	// SortName orders alphabetically by name.
	SortName CocktailSort = "name"
	// SortPopular orders by favorites count descending, newest first on ties,
	// and excludes cocktails with no favorites.
	SortPopular CocktailSort = "popular"
)

// Valid reports whether the sort is one of the known orderings.
func (s CocktailSort) Valid() bool {
	return s == SortNewest || s == SortName || s == SortPopular
}
