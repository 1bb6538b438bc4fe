// Cordial - Cocktail Catalog and List Management
// Copyright 2026 Cordial Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cordialhq/cordial

package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func newTestHandlers(t *testing.T) (*Handlers, *JWTManager) {
	t.Helper()
	cfg := testSecurityConfig()
	manager, err := NewJWTManager(cfg)
	if err != nil {
		t.Fatalf("NewJWTManager failed: %v", err)
	}
	h := NewHandlers(manager, cfg)
	t.Cleanup(h.Close)
	return h, manager
}

func TestLoginSuccess(t *testing.T) {
	t.Parallel()

	h, manager := newTestHandlers(t)

	body := `{"username":"admin","password":"correct-horse-battery-staple"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.RemoteAddr = "10.1.0.1:4000"
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Username != "admin" {
		t.Errorf("Expected username admin, got %q", resp.Username)
	}
	claims, err := manager.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("Returned token invalid: %v", err)
	}
	if claims.Username != "admin" {
		t.Errorf("Token carries username %q", claims.Username)
	}

	cookies := rec.Result().Cookies()
	var found bool
	for _, c := range cookies {
		if c.Name == "cordial_session" && c.Value == resp.Token && c.HttpOnly {
			found = true
		}
	}
	if !found {
		t.Error("Session cookie not set")
	}
}

func TestLoginFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want int
	}{
		{"wrong password", `{"username":"admin","password":"nope"}`, http.StatusUnauthorized},
		{"wrong username", `{"username":"root","password":"correct-horse-battery-staple"}`, http.StatusUnauthorized},
		{"malformed body", `{"username":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, _ := newTestHandlers(t)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(tt.body))
			req.RemoteAddr = "10.1.0.2:4000"
			rec := httptest.NewRecorder()
			h.Login(rec, req)
			if rec.Code != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestLoginRateLimited(t *testing.T) {
	t.Parallel()

	cfg := testSecurityConfig()
	cfg.LoginRateLimit = 0.001
	cfg.LoginRateBurst = 1
	manager, err := NewJWTManager(cfg)
	if err != nil {
		t.Fatalf("NewJWTManager failed: %v", err)
	}
	h := NewHandlers(manager, cfg)
	t.Cleanup(h.Close)

	body := `{"username":"admin","password":"nope"}`
	for i, want := range []int{http.StatusUnauthorized, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
		req.RemoteAddr = "10.1.0.3:4000"
		rec := httptest.NewRecorder()
		h.Login(rec, req)
		if rec.Code != want {
			t.Errorf("Attempt %d: expected %d, got %d", i+1, want, rec.Code)
		}
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "cordial_session" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("Session cookie not cleared")
	}
}
