// Cordial - Cocktail Catalog and List Management
// Copyright 2026 Cordial Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cordialhq/cordial

package database

import (
	"context"
	"fmt"
)

// createTables creates the catalog schema if it does not exist.
//
// list_members has a composite primary key, which is what gives membership
// its set semantics: re-adding an existing (list, cocktail) pair is rejected
// by the key and surfaced as a no-op by the INSERT OR IGNORE callers.
func (db *DB) createTables(ctx context.Context) error {
	statements := []string{
		`CREATE SEQUENCE IF NOT EXISTS seq_list_id START 1`,
		`CREATE SEQUENCE IF NOT EXISTS seq_cocktail_id START 1`,
		`CREATE TABLE IF NOT EXISTS lists (
			id BIGINT PRIMARY KEY DEFAULT nextval('seq_list_id'),
			name VARCHAR NOT NULL,
			description VARCHAR NOT NULL DEFAULT '',
			creator VARCHAR NOT NULL,
			list_type VARCHAR NOT NULL DEFAULT 'custom',
			is_editable BOOLEAN NOT NULL DEFAULT true,
			is_deletable BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMP NOT NULL DEFAULT current_timestamp,
			updated_at TIMESTAMP NOT NULL DEFAULT current_timestamp
		)`,
		`CREATE TABLE IF NOT EXISTS list_members (
			list_id BIGINT NOT NULL,
			cocktail_id BIGINT NOT NULL,
			added_at TIMESTAMP NOT NULL DEFAULT current_timestamp,
			PRIMARY KEY (list_id, cocktail_id)
		)`,
		`CREATE TABLE IF NOT EXISTS cocktails (
			id BIGINT PRIMARY KEY DEFAULT nextval('seq_cocktail_id'),
			name VARCHAR NOT NULL,
			description VARCHAR NOT NULL DEFAULT '',
			instructions VARCHAR NOT NULL DEFAULT '',
			creator VARCHAR NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT current_timestamp,
			updated_at TIMESTAMP NOT NULL DEFAULT current_timestamp
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// createIndexes creates the indexes that carry the list invariants.
//
// idx_lists_system_singleton enforces "at most one favorites and one
// creations list per creator" at the storage layer: for system types the
// indexed expression collapses to (creator, list_type), while every custom
// list contributes a value unique to its own row. Concurrent get-or-create
// races are therefore resolved by the index, not by application locking.
func (db *DB) createIndexes(ctx context.Context) error {
	statements := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_lists_creator_name
			ON lists (creator, name)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_lists_system_singleton
			ON lists (creator, (CASE WHEN list_type IN ('favorites', 'creations')
				THEN list_type
				ELSE 'custom:' || CAST(id AS VARCHAR) END))`,
		`CREATE INDEX IF NOT EXISTS idx_members_cocktail
			ON list_members (cocktail_id)`,
		`CREATE INDEX IF NOT EXISTS idx_cocktails_creator
			ON cocktails (creator)`,
	}

	for _, stmt := range statements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create indexes: %w", err)
		}
	}
	return nil
}
