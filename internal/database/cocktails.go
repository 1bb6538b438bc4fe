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

const cocktailColumns = `id, name, description, instructions, creator, created_at, updated_at`

func scanCocktail(row interface{ Scan(...interface{}) error }) (*models.Cocktail, error) {
	var c models.Cocktail
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Instructions,
		&c.Creator, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCocktail inserts a new cocktail authored by creator.
func (db *DB) CreateCocktail(ctx context.Context, creator, name, description, instructions string) (*models.Cocktail, error) {
	query := `INSERT INTO cocktails (name, description, instructions, creator)
		VALUES (?, ?, ?, ?)
		RETURNING ` + cocktailColumns

	cocktail, err := scanCocktail(db.conn.QueryRowContext(ctx, query,
		name, description, instructions, creator))
	if err != nil {
		return nil, fmt.Errorf("failed to create cocktail: %w", err)
	}
	return cocktail, nil
}

// GetCocktail retrieves a cocktail by id.
func (db *DB) GetCocktail(ctx context.Context, id int64) (*models.Cocktail, error) {
	query := `SELECT ` + cocktailColumns + ` FROM cocktails WHERE id = ?`

	cocktail, err := scanCocktail(db.conn.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCocktailNotFound
		}
		return nil, fmt.Errorf("failed to get cocktail: %w", err)
	}
	return cocktail, nil
}

// ReassignCreator changes a cocktail's creator and returns the updated row.
// The caller is responsible for propagating the ownership change to the old
// owner's creations list.
func (db *DB) ReassignCreator(ctx context.Context, id int64, newCreator string) (*models.Cocktail, error) {
	query := `UPDATE cocktails SET creator = ?, updated_at = current_timestamp
		WHERE id = ?
		RETURNING ` + cocktailColumns

	cocktail, err := scanCocktail(db.conn.QueryRowContext(ctx, query, newCreator, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCocktailNotFound
		}
		return nil, fmt.Errorf("failed to reassign creator: %w", err)
	}
	return cocktail, nil
}

// CocktailIDsByCreator returns the ids of all cocktails currently authored by
// creator, ordered by id.
func (db *DB) CocktailIDsByCreator(ctx context.Context, creator string) ([]int64, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id FROM cocktails WHERE creator = ? ORDER BY id`, creator)
	if err != nil {
		return nil, fmt.Errorf("failed to query cocktails by creator: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan cocktail id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cocktail ids: %w", err)
	}
	return ids, nil
}

// Creators returns every distinct cocktail creator, ordered by name. The
// background resync walks this set.
func (db *DB) Creators(ctx context.Context) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT DISTINCT creator FROM cocktails ORDER BY creator`)
	if err != nil {
		return nil, fmt.Errorf("failed to query creators: %w", err)
	}
	defer rows.Close()

	var creators []string
	for rows.Next() {
		var creator string
		if err := rows.Scan(&creator); err != nil {
			return nil, fmt.Errorf("failed to scan creator: %w", err)
		}
		creators = append(creators, creator)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate creators: %w", err)
	}
	return creators, nil
}

// BrowseFilter selects and orders cocktails for the browse endpoint.
type BrowseFilter struct {
	Query  string
	Sort   models.CocktailSort
	Limit  int
	Offset int
}

// BrowseCocktails returns cocktails matching the filter. The popular sort is
// handled by MostFavorited; this method covers newest and name ordering.
func (db *DB) BrowseCocktails(ctx context.Context, filter BrowseFilter) ([]models.Cocktail, error) {
	query := `SELECT ` + cocktailColumns + ` FROM cocktails`
	args := []interface{}{}

	if filter.Query != "" {
		query += ` WHERE name ILIKE ?`
		args = append(args, "%"+filter.Query+"%")
	}

	switch filter.Sort {
	case models.SortName:
		query += ` ORDER BY name, created_at DESC`
	default:
		query += ` ORDER BY created_at DESC, id DESC`
	}

	query += ` LIMIT ? OFFSET ?`
	args = append(args, filter.Limit, filter.Offset)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to browse cocktails: %w", err)
	}
	defer rows.Close()

	var cocktails []models.Cocktail
	for rows.Next() {
		var c models.Cocktail
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Instructions,
			&c.Creator, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cocktail: %w", err)
		}
		cocktails = append(cocktails, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cocktails: %w", err)
	}
	return cocktails, nil
}

// MostFavorited computes the favorites-popularity ordering at query time:
// each cocktail's count is the number of distinct favorites-type lists
// containing it. Cocktails favorited by nobody are excluded entirely, not
// sorted last; ties break newest-first. Nothing is stored or cached.
func (db *DB) MostFavorited(ctx context.Context, filter BrowseFilter) ([]models.PopularCocktail, error) {
	query := `SELECT c.id, c.name, c.description, c.instructions, c.creator,
			c.created_at, c.updated_at,
			COUNT(*) AS favorites_count
		FROM cocktails c
		JOIN list_members m ON m.cocktail_id = c.id
		JOIN lists l ON l.id = m.list_id AND l.list_type = 'favorites'`
	args := []interface{}{}

	if filter.Query != "" {
		query += ` WHERE c.name ILIKE ?`
		args = append(args, "%"+filter.Query+"%")
	}

	query += ` GROUP BY c.id, c.name, c.description, c.instructions, c.creator,
			c.created_at, c.updated_at
		HAVING COUNT(*) >= 1
		ORDER BY favorites_count DESC, c.created_at DESC
		LIMIT ? OFFSET ?`
	args = append(args, filter.Limit, filter.Offset)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query most favorited: %w", err)
	}
	defer rows.Close()

	var results []models.PopularCocktail
	for rows.Next() {
		var p models.PopularCocktail
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Instructions,
			&p.Creator, &p.CreatedAt, &p.UpdatedAt, &p.FavoritesCount); err != nil {
			return nil, fmt.Errorf("failed to scan popular cocktail: %w", err)
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate popular cocktails: %w", err)
	}
	return results, nil
}

// FavoritesCount returns the number of distinct favorites lists containing
// the cocktail.
func (db *DB) FavoritesCount(ctx context.Context, cocktailID int64) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM list_members m
		JOIN lists l ON l.id = m.list_id
		WHERE m.cocktail_id = ? AND l.list_type = 'favorites'`,
		cocktailID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count favorites: %w", err)
	}
	return count, nil
}
