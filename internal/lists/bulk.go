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
)

// Operation is a closed set of bulk membership operations. Unknown tags are
// rejected once, at the operation gate, instead of falling through a string
// switch.
type Operation string

const (
	OpRemove Operation = "remove"
	OpCopy   Operation = "copy"
	OpMove   Operation = "move"
	OpClone  Operation = "clone"
)

// ParseOperation validates a raw operation tag.
func ParseOperation(raw string) (Operation, bool) {
	switch op := Operation(raw); op {
	case OpRemove, OpCopy, OpMove, OpClone:
		return op, true
	default:
		return "", false
	}
}

// needsTarget reports whether the operation writes into a second list.
func (op Operation) needsTarget() bool {
	return op == OpCopy || op == OpMove || op == OpClone
}

// FailureKind classifies why a bulk call was refused. The transport layer
// maps FailureNotFound to a real 404; every other failure travels inside a
// 200 response body.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureNotFound
	FailurePermission
	FailureInvalidOperation
	FailureTargetRequired
	FailureTargetPermission
)

// Gate failure messages.
const (
	msgPermissionDenied    = "Permission denied"
	msgInvalidOperation    = "Invalid operation"
	msgTargetRequired      = "Target list required"
	msgTargetNotModifiable = "Cannot modify target list"
)

// BulkResult is the application-level outcome of a bulk call. Success and
// gate refusals both land here; only storage faults surface as Go errors.
type BulkResult struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Failure FailureKind `json:"-"`
}

func refused(kind FailureKind, msg string) *BulkResult {
	return &BulkResult{Failure: kind, Error: msg}
}

// BulkEngine runs the gated bulk pipeline over a source list: each gate
// either passes or stops the call with a specific refusal, and execution is
// a single storage transaction, so no partial membership change is ever
// committed.
type BulkEngine struct {
	db *database.DB
}

// NewBulkEngine creates the bulk operation engine.
func NewBulkEngine(db *database.DB) *BulkEngine {
	return &BulkEngine{db: db}
}

// Execute runs operation against sourceListID on behalf of user.
//
// Gate order: source existence, source ownership, operation tag, target
// presence (copy/move/clone), target ownership. targetListID may be nil for
// remove. The returned result's Failure field tells the caller which gate
// refused; a nil-failure result carries the human-readable count summary.
func (e *BulkEngine) Execute(ctx context.Context, user string, sourceListID int64, rawOperation string, cocktailIDs []int64, targetListID *int64) (*BulkResult, error) {
	source, err := e.db.GetList(ctx, sourceListID)
	if err != nil {
		if errors.Is(err, database.ErrListNotFound) {
			return refused(FailureNotFound, "List not found"), nil
		}
		return nil, err
	}
	if !source.OwnedBy(user) {
		return refused(FailurePermission, msgPermissionDenied), nil
	}

	op, ok := ParseOperation(rawOperation)
	if !ok {
		return refused(FailureInvalidOperation, msgInvalidOperation), nil
	}

	var targetID int64
	if op.needsTarget() {
		if targetListID == nil {
			return refused(FailureTargetRequired, msgTargetRequired), nil
		}
		target, err := e.db.GetList(ctx, *targetListID)
		if err != nil {
			if errors.Is(err, database.ErrListNotFound) {
				// An unresolvable target can never pass the ownership gate.
				return refused(FailureTargetPermission, msgTargetNotModifiable), nil
			}
			return nil, err
		}
		if !target.OwnedBy(user) {
			return refused(FailureTargetPermission, msgTargetNotModifiable), nil
		}
		targetID = target.ID
	}

	result, err := e.run(ctx, op, source.ID, targetID, cocktailIDs)
	if err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().
		Str("user", user).
		Str("operation", string(op)).
		Int64("source_list_id", source.ID).
		Int("requested", len(cocktailIDs)).
		Str("outcome", result.Message).
		Msg("Bulk operation executed")

	return result, nil
}

// run performs the already-gated operation.
func (e *BulkEngine) run(ctx context.Context, op Operation, sourceID, targetID int64, cocktailIDs []int64) (*BulkResult, error) {
	switch op {
	case OpRemove:
		removed, err := e.db.BulkRemove(ctx, sourceID, cocktailIDs)
		if err != nil {
			return nil, err
		}
		return &BulkResult{
			Success: true,
			Message: fmt.Sprintf("Removed %d %s", removed, pluralize(removed)),
		}, nil

	case OpCopy:
		if err := e.db.BulkCopy(ctx, targetID, cocktailIDs); err != nil {
			return nil, err
		}
		copied := len(cocktailIDs)
		return &BulkResult{
			Success: true,
			Message: fmt.Sprintf("Copied %d %s", copied, pluralize(copied)),
		}, nil

	case OpMove:
		moved, err := e.db.BulkMove(ctx, sourceID, targetID, cocktailIDs)
		if err != nil {
			return nil, err
		}
		return &BulkResult{
			Success: true,
			Message: fmt.Sprintf("Moved %d %s", moved, pluralize(moved)),
		}, nil

	case OpClone:
		total, err := e.db.CloneMembers(ctx, sourceID, targetID)
		if err != nil {
			return nil, err
		}
		return &BulkResult{
			Success: true,
			Message: fmt.Sprintf("Cloned all %d %s", total, pluralize(total)),
		}, nil

	default:
		return nil, fmt.Errorf("unhandled operation %q", op)
	}
}

func pluralize(n int) string {
	if n == 1 {
		return "cocktail"
	}
	return "cocktails"
}
