// Cordial - Cocktail Catalog and List Management
// Copyright 2026 Cordial Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cordialhq/cordial

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cordialhq/cordial/internal/models"
)

// listColumns is the canonical column order for scanning lists.
const listColumns = `id, name, description, creator, list_type, is_editable, is_deletable, created_at, updated_at`

// scanList scans one row in listColumns order.
func scanList(row interface{ Scan(...interface{}) error }) (*models.List, error) {
	var l models.List
	err := row.Scan(&l.ID, &l.Name, &l.Description, &l.Creator, &l.Type,
		&l.IsEditable, &l.IsDeletable, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// CreateList creates a new list for creator.
//
// System-type flags are forced to their required values regardless of what
// the caller passed: creations lists are never editable or deletable,
// favorites lists are never deletable. Custom lists keep the caller's flags.
//
// Fails with ErrDuplicateName when (creator, name) exists and with
// ErrDuplicateSystemList when a second system list of the same type is
// attempted. Both are detected from the storage-level unique indexes.
func (db *DB) CreateList(ctx context.Context, creator, name, description string, listType models.ListType, editable, deletable bool) (*models.List, error) {
	if !listType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidListType, listType)
	}

	switch listType {
	case models.ListTypeCreations:
		editable = false
		deletable = false
	case models.ListTypeFavorites:
		deletable = false
	}

	query := `INSERT INTO lists (name, description, creator, list_type, is_editable, is_deletable)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING ` + listColumns

	list, err := scanList(db.conn.QueryRowContext(ctx, query,
		name, description, creator, string(listType), editable, deletable))
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, db.classifyDuplicate(ctx, creator, listType)
		}
		return nil, fmt.Errorf("failed to create list: %w", err)
	}
	return list, nil
}

// classifyDuplicate decides which uniqueness rule a constraint violation hit.
// If a system list of the attempted type already exists for the creator, the
// singleton rule fired; otherwise it was the (creator, name) rule.
func (db *DB) classifyDuplicate(ctx context.Context, creator string, listType models.ListType) error {
	if listType.IsSystem() {
		if _, err := db.getSystemList(ctx, creator, listType); err == nil {
			return ErrDuplicateSystemList
		}
	}
	return ErrDuplicateName
}

// GetList retrieves a list by id.
func (db *DB) GetList(ctx context.Context, id int64) (*models.List, error) {
	query := `SELECT ` + listColumns + ` FROM lists WHERE id = ?`

	list, err := scanList(db.conn.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrListNotFound
		}
		return nil, fmt.Errorf("failed to get list: %w", err)
	}
	return list, nil
}

// GetSystemList fetches the creator's system list of the given type without
// creating it. Fails with ErrListNotFound if the list has never been made.
func (db *DB) GetSystemList(ctx context.Context, creator string, listType models.ListType) (*models.List, error) {
	if !listType.IsSystem() {
		return nil, fmt.Errorf("%w: %q is not a system type", ErrInvalidListType, listType)
	}
	return db.getSystemList(ctx, creator, listType)
}

// getSystemList fetches the creator's system list of the given type.
func (db *DB) getSystemList(ctx context.Context, creator string, listType models.ListType) (*models.List, error) {
	query := `SELECT ` + listColumns + ` FROM lists WHERE creator = ? AND list_type = ?`

	list, err := scanList(db.conn.QueryRowContext(ctx, query, creator, string(listType)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrListNotFound
		}
		return nil, fmt.Errorf("failed to get system list: %w", err)
	}
	return list, nil
}

// GetOrCreateSystemList returns the creator's favorites or creations list,
// creating it with its fixed name on first use. Safe to call repeatedly and
// concurrently: if two callers race to create the first list, the unique
// index admits one row and the loser re-reads the winner's list.
func (db *DB) GetOrCreateSystemList(ctx context.Context, creator string, listType models.ListType) (*models.List, error) {
	if !listType.IsSystem() {
		return nil, fmt.Errorf("%w: %q is not a system type", ErrInvalidListType, listType)
	}

	list, err := db.getSystemList(ctx, creator, listType)
	if err == nil {
		return list, nil
	}
	if !errors.Is(err, ErrListNotFound) {
		return nil, err
	}

	name := models.FavoritesListName
	if listType == models.ListTypeCreations {
		name = models.CreationsListName
	}

	list, err = db.CreateList(ctx, creator, name, "", listType, listType == models.ListTypeFavorites, false)
	if err == nil {
		return list, nil
	}
	if errors.Is(err, ErrDuplicateSystemList) || errors.Is(err, ErrDuplicateName) || isWriteConflictError(err) {
		// Lost the creation race; the other writer's row is now visible.
		return db.getSystemList(ctx, creator, listType)
	}
	return nil, err
}

// UpdateList changes a list's name and/or description.
//
// Renaming is rejected for non-editable lists and for system lists: the
// favorites list keeps its fixed name even though its description is
// editable. A name collision with another list of the same owner fails with
// ErrDuplicateName.
func (db *DB) UpdateList(ctx context.Context, id int64, name, description string) (*models.List, error) {
	list, err := db.GetList(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != list.Name && (!list.IsEditable || list.Type.IsSystem()) {
		return nil, ErrListNotEditable
	}
	if description != list.Description && !list.IsEditable && list.Type != models.ListTypeFavorites {
		return nil, ErrListNotEditable
	}

	query := `UPDATE lists SET name = ?, description = ?, updated_at = current_timestamp
		WHERE id = ?
		RETURNING ` + listColumns

	updated, err := scanList(db.conn.QueryRowContext(ctx, query, name, description, id))
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to update list: %w", err)
	}
	return updated, nil
}

// DeleteList removes a list and its membership rows in one transaction.
// Protected lists (favorites, creations, custom lists created with
// is_deletable=false) fail with ErrListNotDeletable.
func (db *DB) DeleteList(ctx context.Context, id int64) error {
	list, err := db.GetList(ctx, id)
	if err != nil {
		return err
	}
	if !list.IsDeletable {
		return ErrListNotDeletable
	}

	return db.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM list_members WHERE list_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete list members: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM lists WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete list: %w", err)
		}
		return nil
	})
}

// ListsByCreator returns all lists owned by creator with member counts,
// system lists first, then customs by creation time.
func (db *DB) ListsByCreator(ctx context.Context, creator string) ([]models.List, error) {
	query := `SELECT l.id, l.name, l.description, l.creator, l.list_type,
			l.is_editable, l.is_deletable, l.created_at, l.updated_at,
			COUNT(m.cocktail_id) AS member_count
		FROM lists l
		LEFT JOIN list_members m ON m.list_id = l.id
		WHERE l.creator = ?
		GROUP BY l.id, l.name, l.description, l.creator, l.list_type,
			l.is_editable, l.is_deletable, l.created_at, l.updated_at
		ORDER BY CASE l.list_type
				WHEN 'favorites' THEN 0
				WHEN 'creations' THEN 1
				ELSE 2 END,
			l.created_at`

	rows, err := db.conn.QueryContext(ctx, query, creator)
	if err != nil {
		return nil, fmt.Errorf("failed to query lists: %w", err)
	}
	defer rows.Close()

	var lists []models.List
	for rows.Next() {
		var l models.List
		if err := rows.Scan(&l.ID, &l.Name, &l.Description, &l.Creator, &l.Type,
			&l.IsEditable, &l.IsDeletable, &l.CreatedAt, &l.UpdatedAt, &l.MemberCount); err != nil {
			return nil, fmt.Errorf("failed to scan list: %w", err)
		}
		lists = append(lists, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lists: %w", err)
	}
	return lists, nil
}
