// Cordial - Cocktail Catalog and List Management
// Copyright 2026 Cordial Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cordialhq/cordial

package lists

import (
	"context"
	"errors"
	"fmt"

	"github.com/cordialhq/cordial/internal/database"
	"github.com/cordialhq/cordial/internal/logging"
	"github.com/cordialhq/cordial/internal/models"
)

// Creations keeps each user's "Your Creations" list in step with cocktail
// ownership. The cocktail lifecycle calls it explicitly on create and on
// owner reassignment; there is no event bus in between.
//
// The anonymous sentinel account never accumulates a creations list:
// cocktails reassigned to it are treated as unauthored.
type Creations struct {
	db            *database.DB
	anonymousUser string
}

// NewCreations creates the creations sync service. anonymousUser is the
// sentinel account that anonymized cocktails are reassigned to.
func NewCreations(db *database.DB, anonymousUser string) *Creations {
	return &Creations{db: db, anonymousUser: anonymousUser}
}

// OnCreate records a newly created cocktail in its creator's creations list,
// creating the list on first use.
func (s *Creations) OnCreate(ctx context.Context, cocktail *models.Cocktail) error {
	if cocktail.Creator == s.anonymousUser {
		return nil
	}

	list, err := s.db.GetOrCreateSystemList(ctx, cocktail.Creator, models.ListTypeCreations)
	if err != nil {
		return fmt.Errorf("failed to resolve creations list: %w", err)
	}
	if err := s.db.AddMember(ctx, list.ID, cocktail.ID); err != nil {
		return fmt.Errorf("failed to record creation: %w", err)
	}

	logging.Ctx(ctx).Debug().
		Str("creator", cocktail.Creator).
		Int64("cocktail_id", cocktail.ID).
		Msg("Cocktail recorded in creations list")
	return nil
}

// OnOwnerReassigned removes the cocktail from oldOwner's creations list
// after an ownership change. The new owner's list is deliberately left
// alone: reassignment (anonymization) does not confer authorship.
func (s *Creations) OnOwnerReassigned(ctx context.Context, cocktail *models.Cocktail, oldOwner string) error {
	if oldOwner == s.anonymousUser {
		return nil
	}

	list, err := s.db.GetSystemList(ctx, oldOwner, models.ListTypeCreations)
	if err != nil {
		if errors.Is(err, database.ErrListNotFound) {
			// Nothing to clean up if the list was never created.
			return nil
		}
		return fmt.Errorf("failed to resolve creations list: %w", err)
	}
	if err := s.db.RemoveMember(ctx, list.ID, cocktail.ID); err != nil {
		return fmt.Errorf("failed to remove reassigned cocktail: %w", err)
	}

	logging.Ctx(ctx).Debug().
		Str("old_owner", oldOwner).
		Str("new_owner", cocktail.Creator).
		Int64("cocktail_id", cocktail.ID).
		Msg("Cocktail removed from former owner's creations list")
	return nil
}

// Resync rebuilds user's creations list to exactly the set of cocktails the
// user currently owns. Idempotent; safe to run at any time.
func (s *Creations) Resync(ctx context.Context, user string) error {
	if user == s.anonymousUser {
		return nil
	}

	list, err := s.db.GetOrCreateSystemList(ctx, user, models.ListTypeCreations)
	if err != nil {
		return fmt.Errorf("failed to resolve creations list: %w", err)
	}
	if err := s.db.ReplaceMembers(ctx, list.ID, user); err != nil {
		return fmt.Errorf("failed to rebuild creations list: %w", err)
	}

	logging.Ctx(ctx).Info().
		Str("user", user).
		Int64("list_id", list.ID).
		Msg("Creations list rebuilt")
	return nil
}

// ResyncAll reconciles the creations list of every known creator. Errors are
// collected per user so one broken list does not stop the sweep.
func (s *Creations) ResyncAll(ctx context.Context) error {
	creators, err := s.db.Creators(ctx)
	if err != nil {
		return fmt.Errorf("failed to enumerate creators: %w", err)
	}

	var failed int
	for _, creator := range creators {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Resync(ctx, creator); err != nil {
			failed++
			logging.Ctx(ctx).Error().Err(err).Str("user", creator).Msg("Creations resync failed")
		}
	}
	if failed > 0 {
		return fmt.Errorf("creations resync failed for %d of %d creators", failed, len(creators))
	}
	return nil
}
