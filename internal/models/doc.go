// Cordial - Cocktail Catalog and List Management
// Copyright 2026 Cordial Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cordialhq/cordial

// Package models defines the shared data structures for Cordial: lists and
// their membership, cocktails, and the API response envelope.
//
// Models carry no behavior beyond small predicate helpers; all persistence
// and invariant enforcement lives in the database package.
package models
