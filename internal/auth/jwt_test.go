// Cordial - Cocktail Catalog and List Management
// Copyright 2026 Cordial Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cordialhq/cordial

package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/cordialhq/cordial/internal/config"
)

func testSecurityConfig() *config.SecurityConfig {
	return &config.SecurityConfig{
		JWTSecret:      "test-secret-key-minimum-32-characters!!",
		SessionTimeout: time.Hour,
		AdminUsername:  "admin",
		AdminPassword:  "correct-horse-battery-staple",
		SignInURL:      "/accounts/login/",
		CookieName:     "cordial_session",
		LoginRateLimit: 100,
		LoginRateBurst: 100,
	}
}

func TestNewJWTManagerEmptySecret(t *testing.T) {
	t.Parallel()

	cfg := testSecurityConfig()
	cfg.JWTSecret = ""
	if _, err := NewJWTManager(cfg); err == nil {
		t.Error("Expected error for empty secret")
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	manager, err := NewJWTManager(testSecurityConfig())
	if err != nil {
		t.Fatalf("NewJWTManager failed: %v", err)
	}

	token, err := manager.GenerateToken("alice")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.Username != "alice" {
		t.Errorf("Expected username alice, got %q", claims.Username)
	}
}

func TestValidateTokenRejections(t *testing.T) {
	t.Parallel()

	manager, err := NewJWTManager(testSecurityConfig())
	if err != nil {
		t.Fatalf("NewJWTManager failed: %v", err)
	}

	otherCfg := testSecurityConfig()
	otherCfg.JWTSecret = "another-secret-key-32-characters-long!!!"
	otherManager, err := NewJWTManager(otherCfg)
	if err != nil {
		t.Fatalf("NewJWTManager failed: %v", err)
	}
	foreign, err := otherManager.GenerateToken("alice")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	expiredCfg := testSecurityConfig()
	expiredCfg.SessionTimeout = -time.Hour
	expiredManager, err := NewJWTManager(expiredCfg)
	if err != nil {
		t.Fatalf("NewJWTManager failed: %v", err)
	}
	expired, err := expiredManager.GenerateToken("alice")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	valid, err := manager.GenerateToken("alice")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	tampered := valid[:strings.LastIndex(valid, ".")] + ".tampered"

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"garbage token", "not.a.token"},
		{"wrong secret", foreign},
		{"expired token", expired},
		{"tampered signature", tampered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := manager.ValidateToken(tt.token); err == nil {
				t.Errorf("Expected validation failure for %s", tt.name)
			}
		})
	}
}
