// Cordial - Cocktail Catalog and List Management
// Copyright 2026 Cordial Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cordialhq/cordial

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// AddMember adds a cocktail to a list. Adding an id that is already present
// is a no-op success; membership is a set. That contract holds under
// concurrency too: INSERT OR IGNORE only absorbs duplicates visible inside
// the transaction, so a racing add that loses the commit fails with a
// duplicate-key or write-conflict error even though the row it wanted now
// exists. Losing that race is the success this operation promises, the same
// way GetOrCreateSystemList absorbs its lost creation race.
func (db *DB) AddMember(ctx context.Context, listID, cocktailID int64) error {
	const maxAttempts = 3

	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err = db.withTx(ctx, func(tx *sql.Tx) error {
			if err := addMemberTx(ctx, tx, listID, cocktailID); err != nil {
				return err
			}
			return touchList(ctx, tx, listID)
		})
		if err == nil {
			return nil
		}
		if isUniqueConstraintError(err) {
			// A concurrent transaction committed the same pair first.
			return nil
		}
		if !isWriteConflictError(err) {
			return err
		}
		// Write conflicts can also come from the updated_at touch when a
		// different pair is added to the same list; only a present row
		// means the work is done.
		present, checkErr := db.HasMember(ctx, listID, cocktailID)
		if checkErr == nil && present {
			return nil
		}
	}
	return err
}

// RemoveMember removes a cocktail from a list. Removing an absent id is a
// no-op success.
func (db *DB) RemoveMember(ctx context.Context, listID, cocktailID int64) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM list_members WHERE list_id = ? AND cocktail_id = ?`,
			listID, cocktailID); err != nil {
			return fmt.Errorf("failed to remove member: %w", err)
		}
		return touchList(ctx, tx, listID)
	})
}

// addMemberTx inserts a membership row inside an existing transaction.
// INSERT OR IGNORE makes re-adds no-ops via the composite primary key.
func addMemberTx(ctx context.Context, tx *sql.Tx, listID, cocktailID int64) error {
	if _, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO list_members (list_id, cocktail_id) VALUES (?, ?)`,
		listID, cocktailID); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// touchList bumps a list's updated_at inside an existing transaction.
func touchList(ctx context.Context, tx *sql.Tx, listID int64) error {
	if _, err := tx.ExecContext(ctx,
		`UPDATE lists SET updated_at = current_timestamp WHERE id = ?`, listID); err != nil {
		return fmt.Errorf("failed to touch list: %w", err)
	}
	return nil
}

// Members returns the cocktail ids in a list, ordered by id for stable output.
func (db *DB) Members(ctx context.Context, listID int64) ([]int64, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT cocktail_id FROM list_members WHERE list_id = ? ORDER BY cocktail_id`, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return ids, nil
}

// MemberCount returns the number of cocktails in a list.
func (db *DB) MemberCount(ctx context.Context, listID int64) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM list_members WHERE list_id = ?`, listID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count members: %w", err)
	}
	return count, nil
}

// HasMember reports whether a cocktail is in a list.
func (db *DB) HasMember(ctx context.Context, listID, cocktailID int64) (bool, error) {
	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM list_members WHERE list_id = ? AND cocktail_id = ?`,
		listID, cocktailID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return count > 0, nil
}

// ToggleMember flips a cocktail's membership in a list within one
// transaction and returns the resulting state and member count. Two
// concurrent toggles for the same pair are serialized on the membership
// row's primary key, so both cannot commit as "add".
func (db *DB) ToggleMember(ctx context.Context, listID, cocktailID int64) (favorited bool, count int, err error) {
	err = db.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`DELETE FROM list_members WHERE list_id = ? AND cocktail_id = ?`,
			listID, cocktailID)
		if err != nil {
			return fmt.Errorf("failed to toggle member: %w", err)
		}
		removed, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read rows affected: %w", err)
		}

		if removed == 0 {
			if err := addMemberTx(ctx, tx, listID, cocktailID); err != nil {
				return err
			}
			favorited = true
		}

		if err := touchList(ctx, tx, listID); err != nil {
			return err
		}

		return tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM list_members WHERE list_id = ?`, listID).Scan(&count)
	})
	if err != nil {
		return false, 0, err
	}
	return favorited, count, nil
}

// placeholders builds a "?, ?, ?" fragment for n parameters.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// int64Args converts ids to []interface{} for variadic query arguments.
func int64Args(prefix []interface{}, ids []int64) []interface{} {
	args := make([]interface{}, 0, len(prefix)+len(ids))
	args = append(args, prefix...)
	for _, id := range ids {
		args = append(args, id)
	}
	return args
}

// BulkRemove deletes the given cocktails from a list in one transaction and
// returns how many were actually present. Absent ids are skipped silently.
func (db *DB) BulkRemove(ctx context.Context, listID int64, cocktailIDs []int64) (int, error) {
	if len(cocktailIDs) == 0 {
		return 0, nil
	}

	var removed int
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		query := `DELETE FROM list_members WHERE list_id = ? AND cocktail_id IN (` +
			placeholders(len(cocktailIDs)) + `)`
		res, err := tx.ExecContext(ctx, query, int64Args([]interface{}{listID}, cocktailIDs)...)
		if err != nil {
			return fmt.Errorf("failed to bulk remove: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read rows affected: %w", err)
		}
		removed = int(n)
		return touchList(ctx, tx, listID)
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// BulkCopy adds the given cocktails to the target list in one transaction.
// The source list is never touched. Ids already in the target are no-ops.
func (db *DB) BulkCopy(ctx context.Context, targetID int64, cocktailIDs []int64) error {
	if len(cocktailIDs) == 0 {
		return nil
	}

	return db.withTx(ctx, func(tx *sql.Tx) error {
		for _, id := range cocktailIDs {
			if err := addMemberTx(ctx, tx, targetID, id); err != nil {
				return err
			}
		}
		return touchList(ctx, tx, targetID)
	})
}

// BulkMove transfers the cocktails that are actually present in the source
// list to the target list, atomically, and returns how many moved. Ids not
// in the source are ignored; ids already in the target are deduplicated by
// the membership key.
func (db *DB) BulkMove(ctx context.Context, sourceID, targetID int64, cocktailIDs []int64) (int, error) {
	if len(cocktailIDs) == 0 {
		return 0, nil
	}

	var moved int
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		query := `SELECT cocktail_id FROM list_members WHERE list_id = ? AND cocktail_id IN (` +
			placeholders(len(cocktailIDs)) + `)`
		rows, err := tx.QueryContext(ctx, query, int64Args([]interface{}{sourceID}, cocktailIDs)...)
		if err != nil {
			return fmt.Errorf("failed to query source members: %w", err)
		}

		var present []int64
		for rows.Next() {
			var id int64
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan source member: %w", err)
			}
			present = append(present, id)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return fmt.Errorf("failed to iterate source members: %w", err)
		}
		rows.Close()

		if len(present) == 0 {
			return nil
		}

		for _, id := range present {
			if err := addMemberTx(ctx, tx, targetID, id); err != nil {
				return err
			}
		}

		delQuery := `DELETE FROM list_members WHERE list_id = ? AND cocktail_id IN (` +
			placeholders(len(present)) + `)`
		if _, err := tx.ExecContext(ctx, delQuery, int64Args([]interface{}{sourceID}, present)...); err != nil {
			return fmt.Errorf("failed to remove moved members: %w", err)
		}

		moved = len(present)
		if err := touchList(ctx, tx, sourceID); err != nil {
			return err
		}
		return touchList(ctx, tx, targetID)
	})
	if err != nil {
		return 0, err
	}
	return moved, nil
}

// CloneMembers unions the source list's entire current membership into the
// target list and returns the source size at clone time. Existing target
// members are preserved; the NOT EXISTS guard makes overlap a no-op.
func (db *DB) CloneMembers(ctx context.Context, sourceID, targetID int64) (int, error) {
	var total int
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM list_members WHERE list_id = ?`, sourceID).Scan(&total); err != nil {
			return fmt.Errorf("failed to count source members: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO list_members (list_id, cocktail_id)
			SELECT ?, m.cocktail_id FROM list_members m
			WHERE m.list_id = ?
			AND NOT EXISTS (
				SELECT 1 FROM list_members t
				WHERE t.list_id = ? AND t.cocktail_id = m.cocktail_id
			)`,
			targetID, sourceID, targetID); err != nil {
			return fmt.Errorf("failed to clone members: %w", err)
		}
		return touchList(ctx, tx, targetID)
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// ReplaceMembers sets a list's membership to exactly the cocktails whose
// current creator is the given user, in one transaction. This is the
// creations-list repair path: calling it at any time converges the list to
// the correct set with no other side effects.
func (db *DB) ReplaceMembers(ctx context.Context, listID int64, creator string) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM list_members WHERE list_id = ?`, listID); err != nil {
			return fmt.Errorf("failed to clear members: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO list_members (list_id, cocktail_id)
			SELECT ?, id FROM cocktails WHERE creator = ?`,
			listID, creator); err != nil {
			return fmt.Errorf("failed to rebuild members: %w", err)
		}
		return touchList(ctx, tx, listID)
	})
}
