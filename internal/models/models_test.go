// Cordial - Cocktail Catalog and List Management
// Copyright 2026 Cordial Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cordialhq/cordial

package models

import (
	"testing"
)

func TestListTypeIsSystem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		listType ListType
		want     bool
	}{
		{"favorites is system", ListTypeFavorites, true},
		{"creations is system", ListTypeCreations, true},
		{"custom is not system", ListTypeCustom, false},
		{"unknown is not system", ListType("playlist"), false},
		{"empty is not system", ListType(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.listType.IsSystem(); got != tt.want {
				t.Errorf("IsSystem() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestListTypeValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		listType ListType
		want     bool
	}{
		{"favorites", ListTypeFavorites, true},
		{"creations", ListTypeCreations, true},
		{"custom", ListTypeCustom, true},
		{"unknown", ListType("shopping"), false},
		{"empty", ListType(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.listType.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestListOwnedBy(t *testing.T) {
	t.Parallel()

	list := &List{ID: 1, Name: "Tiki Night", Creator: "alice"}

	if !list.OwnedBy("alice") {
		t.Error("expected alice to own the list")
	}
	if list.OwnedBy("bob") {
		t.Error("expected bob not to own the list")
	}
	if list.OwnedBy("") {
		t.Error("expected empty user not to own the list")
	}
}

func TestCocktailSortValid(t *testing.T) {
	t.Parallel()

	for _, s := range []CocktailSort{SortNewest, SortName, SortPopular} {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if CocktailSort("rating").Valid() {
		t.Error("expected unknown sort to be invalid")
	}
}
