// Cordial - Cocktail Catalog and List Management
// Copyright 2026 Cordial Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cordialhq/cordial

package database

import "errors"

// Typed failures surfaced by the store. Callers match with errors.Is and map
// them to validation errors or API responses at the boundary.
var (
	// ErrListNotFound is returned when a list id does not resolve.
	ErrListNotFound = errors.New("list not found")

	// ErrCocktailNotFound is returned when a cocktail id does not resolve.
	ErrCocktailNotFound = errors.New("cocktail not found")

	// ErrDuplicateName is returned when a (creator, name) pair already exists.
	ErrDuplicateName = errors.New("a list with this name already exists")

	// ErrDuplicateSystemList is returned when creating a second favorites or
	// creations list for the same creator.
	ErrDuplicateSystemList = errors.New("user already has a list of this system type")

	// ErrListNotEditable is returned when renaming a list whose name is
	// immutable (non-editable or system lists).
	ErrListNotEditable = errors.New("list is not editable")

	// ErrListNotDeletable is returned when deleting a protected list.
	ErrListNotDeletable = errors.New("list is not deletable")

	// ErrInvalidListType is returned for unknown list types.
	ErrInvalidListType = errors.New("invalid list type")
)
