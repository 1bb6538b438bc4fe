// Cordial - Cocktail Catalog and List Management
// Copyright 2026 Cordial Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cordialhq/cordial

package lists

import (
	"context"
	"testing"

	"github.com/cordialhq/cordial/internal/database"
	"github.com/cordialhq/cordial/internal/models"
)

// makeListWithMembers creates a custom list seeded with the given cocktail ids.
func makeListWithMembers(t *testing.T, db *database.DB, creator, name string, ids ...int64) *models.List {
	t.Helper()
	ctx := context.Background()
	list, err := db.CreateList(ctx, creator, name, "", models.ListTypeCustom, true, true)
	if err != nil {
		t.Fatalf("Failed to create list %q: %v", name, err)
	}
	for _, id := range ids {
		if err := db.AddMember(ctx, list.ID, id); err != nil {
			t.Fatalf("Failed to seed member %d: %v", id, err)
		}
	}
	return list
}

func mustMembers(t *testing.T, db *database.DB, listID int64) []int64 {
	t.Helper()
	members, err := db.Members(context.Background(), listID)
	if err != nil {
		t.Fatalf("Members failed: %v", err)
	}
	return members
}

func TestParseOperation(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"remove", "copy", "move", "clone"} {
		if _, ok := ParseOperation(raw); !ok {
			t.Errorf("ParseOperation(%q) should succeed", raw)
		}
	}
	for _, raw := range []string{"", "delete", "REMOVE", "merge"} {
		if _, ok := ParseOperation(raw); ok {
			t.Errorf("ParseOperation(%q) should fail", raw)
		}
	}
}

func TestBulkRemoveOperation(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()
	engine := NewBulkEngine(db)
	source := makeListWithMembers(t, db, "alice", "Classics", 1, 2, 3)

	result, err := engine.Execute(ctx, "alice", source.ID, "remove", []int64{1, 2}, nil)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !result.Success {
		t.Fatalf("Expected success, got %+v", result)
	}
	if result.Message != "Removed 2 cocktails" {
		t.Errorf("Expected message %q, got %q", "Removed 2 cocktails", result.Message)
	}
	if members := mustMembers(t, db, source.ID); len(members) != 1 || members[0] != 3 {
		t.Errorf("Expected source members [3], got %v", members)
	}
}

func TestBulkRemoveAbsentIDs(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	engine := NewBulkEngine(db)
	source := makeListWithMembers(t, db, "alice", "Classics", 1)

	result, err := engine.Execute(context.Background(), "alice", source.ID, "remove", []int64{50, 60}, nil)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !result.Success {
		t.Fatalf("Expected success, got %+v", result)
	}
	if result.Message != "Removed 0 cocktails" {
		t.Errorf("Expected zero-count message, got %q", result.Message)
	}
}

func TestBulkCopyOperation(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()
	engine := NewBulkEngine(db)
	source := makeListWithMembers(t, db, "alice", "Classics", 1, 2, 3)
	target := makeListWithMembers(t, db, "alice", "Party")

	result, err := engine.Execute(ctx, "alice", source.ID, "copy", []int64{1, 2}, &target.ID)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !result.Success {
		t.Fatalf("Expected success, got %+v", result)
	}
	if result.Message != "Copied 2 cocktails" {
		t.Errorf("Unexpected message %q", result.Message)
	}
	if members := mustMembers(t, db, source.ID); len(members) != 3 {
		t.Errorf("Copy must not modify source, got %v", members)
	}
	if members := mustMembers(t, db, target.ID); len(members) != 2 {
		t.Errorf("Expected target members [1 2], got %v", members)
	}
}

func TestBulkMoveOperation(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()
	engine := NewBulkEngine(db)
	source := makeListWithMembers(t, db, "alice", "Classics", 1, 2, 3)
	target := makeListWithMembers(t, db, "alice", "Party")

	result, err := engine.Execute(ctx, "alice", source.ID, "move", []int64{1}, &target.ID)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !result.Success {
		t.Fatalf("Expected success, got %+v", result)
	}
	if result.Message != "Moved 1 cocktail" {
		t.Errorf("Unexpected message %q", result.Message)
	}
	if members := mustMembers(t, db, source.ID); len(members) != 2 {
		t.Errorf("Expected source members [2 3], got %v", members)
	}
	if members := mustMembers(t, db, target.ID); len(members) != 1 || members[0] != 1 {
		t.Errorf("Expected target members [1], got %v", members)
	}
}

func TestBulkCloneOperation(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()
	engine := NewBulkEngine(db)
	source := makeListWithMembers(t, db, "alice", "Classics", 1, 2, 3)
	target := makeListWithMembers(t, db, "alice", "Backup")

	// Clone ignores the requested ids and copies the whole source set.
	result, err := engine.Execute(ctx, "alice", source.ID, "clone", []int64{1}, &target.ID)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !result.Success {
		t.Fatalf("Expected success, got %+v", result)
	}
	if result.Message != "Cloned all 3 cocktails" {
		t.Errorf("Expected message %q, got %q", "Cloned all 3 cocktails", result.Message)
	}
	if members := mustMembers(t, db, source.ID); len(members) != 3 {
		t.Errorf("Clone must not modify source, got %v", members)
	}
	if members := mustMembers(t, db, target.ID); len(members) != 3 {
		t.Errorf("Expected target members [1 2 3], got %v", members)
	}
}

func TestBulkClonePreservesTargetMembers(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	engine := NewBulkEngine(db)
	source := makeListWithMembers(t, db, "alice", "Classics", 1, 2)
	target := makeListWithMembers(t, db, "alice", "Backup", 2, 9)

	result, err := engine.Execute(context.Background(), "alice", source.ID, "clone", nil, &target.ID)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !result.Success {
		t.Fatalf("Expected success, got %+v", result)
	}
	if members := mustMembers(t, db, target.ID); len(members) != 3 {
		t.Errorf("Expected union [1 2 9], got %v", members)
	}
}

func TestBulkSourceNotFound(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	engine := NewBulkEngine(db)

	result, err := engine.Execute(context.Background(), "alice", 99999, "remove", []int64{1}, nil)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Failure != FailureNotFound {
		t.Errorf("Expected FailureNotFound, got %+v", result)
	}
}

func TestBulkOwnershipGates(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()
	engine := NewBulkEngine(db)
	source := makeListWithMembers(t, db, "alice", "Classics", 1, 2, 3)
	foreign := makeListWithMembers(t, db, "bob", "Bob's Picks")

	// Non-owner of the source is refused before anything runs.
	result, err := engine.Execute(ctx, "mallory", source.ID, "remove", []int64{1}, nil)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Failure != FailurePermission || result.Error != "Permission denied" {
		t.Errorf("Expected permission refusal, got %+v", result)
	}
	if members := mustMembers(t, db, source.ID); len(members) != 3 {
		t.Errorf("Refused call must not mutate source, got %v", members)
	}

	// Copy into someone else's list is refused at the target gate.
	result, err = engine.Execute(ctx, "alice", source.ID, "copy", []int64{1}, &foreign.ID)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Failure != FailureTargetPermission || result.Error != "Cannot modify target list" {
		t.Errorf("Expected target permission refusal, got %+v", result)
	}
	if members := mustMembers(t, db, foreign.ID); len(members) != 0 {
		t.Errorf("Refused call must not mutate target, got %v", members)
	}
}

func TestBulkGateOrder(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()
	engine := NewBulkEngine(db)
	source := makeListWithMembers(t, db, "alice", "Classics", 1)

	tests := []struct {
		name      string
		user      string
		operation string
		target    *int64
		failure   FailureKind
		errMsg    string
	}{
		{"ownership before operation", "mallory", "bogus", nil, FailurePermission, "Permission denied"},
		{"invalid operation", "alice", "bogus", nil, FailureInvalidOperation, "Invalid operation"},
		{"missing target", "alice", "copy", nil, FailureTargetRequired, "Target list required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result, err := engine.Execute(ctx, tt.user, source.ID, tt.operation, []int64{1}, tt.target)
			if err != nil {
				t.Fatalf("Execute failed: %v", err)
			}
			if result.Failure != tt.failure {
				t.Errorf("Expected failure %v, got %+v", tt.failure, result)
			}
			if result.Error != tt.errMsg {
				t.Errorf("Expected error %q, got %q", tt.errMsg, result.Error)
			}
		})
	}
}

func TestBulkTargetNotFound(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	engine := NewBulkEngine(db)
	source := makeListWithMembers(t, db, "alice", "Classics", 1)

	missing := int64(99999)
	result, err := engine.Execute(context.Background(), "alice", source.ID, "copy", []int64{1}, &missing)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Failure != FailureTargetPermission {
		t.Errorf("Unresolvable target should refuse at the target gate, got %+v", result)
	}
}
