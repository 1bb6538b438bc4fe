// Cordial - Cocktail Catalog and List Management
// Copyright 2026 Cordial Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cordialhq/cordial

package models

import (
	"time"
)

// ListType identifies the kind of a list. The two system types are managed
// automatically and exist at most once per creator; custom lists are created
// explicitly by their owner.
type ListType string

const (
	// ListTypeFavorites is the per-user favorites list, created lazily on the
	// first favorite toggle. Never deletable; only its description is editable.
	ListTypeFavorites ListType = "favorites"

	// ListTypeCreations is the per-user "Your Creations" list, kept in sync
	// with cocktail ownership. Neither editable nor deletable.
	ListTypeCreations ListType = "creations"

	// ListTypeCustom is a user-created list. Editable and deletable unless the
	// owner opted out at creation time.
	ListTypeCustom ListType = "custom"
)

// Fixed display names for the system lists.
const (
	FavoritesListName = "Favorites"
	CreationsListName = "Your Creations"
)

// IsSystem reports whether the type is one of the auto-managed system types.
func (t ListType) IsSystem() bool {
	return t == ListTypeFavorites || t == ListTypeCreations
}

// Valid reports whether the type is one of the known list types.
func (t ListType) Valid() bool {
	return t == ListTypeFavorites || t == ListTypeCreations || t == ListTypeCustom
}

// List represents a named, owned collection of cocktail identifiers.
//
// Invariants enforced by the store:
//   - (Creator, Name) is unique.
//   - At most one favorites and one creations list per creator.
//   - creations lists are neither editable nor deletable.
//   - favorites lists are not deletable and their name is immutable.
//
// Membership is a set: unordered, deduplicated, no-op on re-add.
type List struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Creator     string    `json:"creator"`
	Type        ListType  `json:"list_type"`
	IsEditable  bool      `json:"is_editable"`
	IsDeletable bool      `json:"is_deletable"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// MemberCount is populated by queries that join the membership table.
	MemberCount int `json:"member_count"`
}

// OwnedBy reports whether user is the exclusive owner of the list.
func (l *List) OwnedBy(user string) bool {
	return l.Creator == user
}

// ListDetail is a list together with its full membership, as returned by the
// single-list read endpoint.
type ListDetail struct {
	List
	Members []int64 `json:"members"`
}
