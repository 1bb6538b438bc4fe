// Cordial - Cocktail Catalog and List Management
// Copyright 2026 Cordial Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cordialhq/cordial

// Package database provides DuckDB-backed persistence for lists, list
// membership, and cocktails.
//
// Layout:
//   - database.go: connection lifecycle, transactions, error classification
//   - schema.go: tables, sequences, and the indexes that carry invariants
//   - lists.go: list CRUD and system-list get-or-create
//   - members.go: membership set operations, toggle, and bulk mutations
//   - cocktails.go: cocktail CRUD, browsing, and the popularity query
//
// Every mutating operation runs in a single transaction; bulk mutations are
// all-or-nothing. Uniqueness rules (list names per creator, one system list
// per type per creator) live in UNIQUE indexes so concurrent writers are
// resolved by the store itself.
package database
