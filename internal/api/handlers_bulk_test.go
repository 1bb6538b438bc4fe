// Cordial - Cocktail Catalog and List Management
// Copyright 2026 Cordial Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cordialhq/cordial

package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cordialhq/cordial/internal/models"
)

// seedList creates a custom list and fills it with freshly created cocktails,
// returning the list and the member IDs in creation order.
func seedList(s *testServer, creator, name string, cocktailCount int) (*models.List, []int64) {
	s.t.Helper()

	list := s.makeList(creator, name)
	ids := make([]int64, 0, cocktailCount)
	for i := 0; i < cocktailCount; i++ {
		cocktail := s.makeCocktail(creator, fmt.Sprintf("%s #%d", name, i))
		if err := s.db.AddMember(context.Background(), list.ID, cocktail.ID); err != nil {
			s.t.Fatalf("Failed to seed member: %v", err)
		}
		ids = append(ids, cocktail.ID)
	}
	return list, ids
}

func bulkBody(operation string, cocktailIDs []int64, targetListID *int64) map[string]interface{} {
	body := map[string]interface{}{
		"operation":    operation,
		"cocktail_ids": cocktailIDs,
	}
	if targetListID != nil {
		body["target_list_id"] = *targetListID
	}
	return body
}

func TestBulkRemove(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	list, ids := seedList(s, "alice", "Sours", 3)

	rec := s.request(http.MethodPost, fmt.Sprintf("/lists/%d/bulk/", list.ID), "alice",
		bulkBody("remove", []int64{ids[0], ids[1]}, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	body := decode(t, rec)
	if body["success"] != true || body["message"] != "Removed 2 cocktails" {
		t.Errorf("Unexpected response: %v", body)
	}
	if got := s.members(list.ID); len(got) != 1 || got[0] != ids[2] {
		t.Errorf("Expected only %d to remain, got %v", ids[2], got)
	}
}

func TestBulkCopyAndMove(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	source, ids := seedList(s, "alice", "Sours", 3)
	target := s.makeList("alice", "Party")

	rec := s.request(http.MethodPost, fmt.Sprintf("/lists/%d/bulk/", source.ID), "alice",
		bulkBody("copy", []int64{ids[0], ids[1]}, &target.ID))
	body := decode(t, rec)
	if body["success"] != true || body["message"] != "Copied 2 cocktails" {
		t.Errorf("Unexpected copy response: %v", body)
	}
	if got := s.members(source.ID); len(got) != 3 {
		t.Errorf("Copy must not mutate the source, got %v", got)
	}
	if got := s.members(target.ID); len(got) != 2 {
		t.Errorf("Expected 2 copied members, got %v", got)
	}

	rec = s.request(http.MethodPost, fmt.Sprintf("/lists/%d/bulk/", source.ID), "alice",
		bulkBody("move", []int64{ids[2]}, &target.ID))
	body = decode(t, rec)
	if body["message"] != "Moved 1 cocktail" {
		t.Errorf("Unexpected move response: %v", body)
	}
	if got := s.members(source.ID); len(got) != 2 {
		t.Errorf("Expected 2 members left in source, got %v", got)
	}
	if got := s.members(target.ID); len(got) != 3 {
		t.Errorf("Expected 3 members in target, got %v", got)
	}
}

func TestBulkCloneIgnoresSelection(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	source, ids := seedList(s, "alice", "Sours", 3)
	target := s.makeList("alice", "Backup")

	// Clone takes the whole source regardless of the requested IDs.
	rec := s.request(http.MethodPost, fmt.Sprintf("/lists/%d/bulk/", source.ID), "alice",
		bulkBody("clone", []int64{ids[0]}, &target.ID))
	body := decode(t, rec)
	if body["success"] != true || body["message"] != "Cloned all 3 cocktails" {
		t.Errorf("Unexpected clone response: %v", body)
	}
	if got := s.members(target.ID); len(got) != 3 {
		t.Errorf("Expected full clone, got %v", got)
	}
}

func TestBulkMissingSourceIs404(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	rec := s.request(http.MethodPost, "/lists/9999/bulk/", "alice",
		bulkBody("remove", []int64{1}, nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestBulkInvalidJSON(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	list, _ := seedList(s, "alice", "Sours", 1)

	token, err := s.jwt.GenerateToken("alice")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/lists/%d/bulk/", list.ID),
		bytes.NewReader([]byte("{not json")))
	req.AddCookie(&http.Cookie{Name: s.cfg.Security.CookieName, Value: token})
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	checkFailure(t, rec, "Invalid JSON data")
}

func TestBulkRefusals(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	source, ids := seedList(s, "alice", "Sours", 2)
	foreignTarget := s.makeList("mallory", "Stolen")

	tests := []struct {
		name    string
		user    string
		body    map[string]interface{}
		message string
	}{
		{"non-owner source", "mallory", bulkBody("remove", ids, nil), "Permission denied"},
		{"unknown operation", "alice", bulkBody("shuffle", ids, nil), "Invalid operation"},
		{"uppercase operation", "alice", bulkBody("REMOVE", ids, nil), "Invalid operation"},
		{"copy without target", "alice", bulkBody("copy", ids, nil), "Target list required"},
		{"foreign target", "alice", bulkBody("copy", ids, &foreignTarget.ID), "Cannot modify target list"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.request(http.MethodPost, fmt.Sprintf("/lists/%d/bulk/", source.ID), tt.user, tt.body)
			checkFailure(t, rec, tt.message)
		})
	}

	// None of the refused operations may have touched the data.
	if got := s.members(source.ID); len(got) != 2 {
		t.Errorf("Refused operations mutated the source: %v", got)
	}
	if got := s.members(foreignTarget.ID); len(got) != 0 {
		t.Errorf("Refused operations mutated the target: %v", got)
	}
}

func TestMemberAddAndRemove(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	list := s.makeList("alice", "Brunch")
	cocktail := s.makeCocktail("alice", "Mimosa")

	addPath := fmt.Sprintf("/cocktails/%d/lists/%d/add/", cocktail.ID, list.ID)
	removePath := fmt.Sprintf("/cocktails/%d/lists/%d/remove/", cocktail.ID, list.ID)

	rec := s.request(http.MethodPost, addPath, "alice", nil)
	if body := decode(t, rec); body["success"] != true {
		t.Fatalf("Add failed: %v", body)
	}
	if got := s.members(list.ID); len(got) != 1 {
		t.Errorf("Expected 1 member, got %v", got)
	}

	// Adding again is idempotent.
	s.request(http.MethodPost, addPath, "alice", nil)
	if got := s.members(list.ID); len(got) != 1 {
		t.Errorf("Expected add to stay idempotent, got %v", got)
	}

	rec = s.request(http.MethodPost, removePath, "alice", nil)
	if body := decode(t, rec); body["success"] != true {
		t.Fatalf("Remove failed: %v", body)
	}
	if got := s.members(list.ID); len(got) != 0 {
		t.Errorf("Expected empty list, got %v", got)
	}
}

func TestMemberAddDeniedForNonOwner(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	list := s.makeList("alice", "Brunch")
	cocktail := s.makeCocktail("alice", "Mimosa")

	rec := s.request(http.MethodPost,
		fmt.Sprintf("/cocktails/%d/lists/%d/add/", cocktail.ID, list.ID), "mallory", nil)
	checkFailure(t, rec, "Permission denied")
}

func TestMemberAddUnknownCocktailIs404(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	list := s.makeList("alice", "Brunch")

	rec := s.request(http.MethodPost,
		fmt.Sprintf("/cocktails/9999/lists/%d/add/", list.ID), "alice", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}
