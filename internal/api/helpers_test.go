// Cordial - Cocktail Catalog and List Management
// Copyright 2026 Cordial Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cordialhq/cordial

package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/cordialhq/cordial/internal/auth"
	"github.com/cordialhq/cordial/internal/config"
	"github.com/cordialhq/cordial/internal/database"
	"github.com/cordialhq/cordial/internal/models"
)

// testServer bundles a fully wired router over an in-memory database.
type testServer struct {
	t      *testing.T
	db     *database.DB
	jwt    *auth.JWTManager
	cfg    *config.Config
	router http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Path:      ":memory:",
			MaxMemory: "500MB",
			Threads:   2,
		},
		Security: config.SecurityConfig{
			JWTSecret:      "test-secret-key-minimum-32-characters!!",
			SessionTimeout: time.Hour,
			AdminUsername:  "admin",
			AdminPassword:  "admin-password",
			CORSOrigins:    []string{"http://localhost:3000"},
			SignInURL:      "/accounts/login/",
			CookieName:     "cordial_session",
			LoginRateLimit: 100,
			LoginRateBurst: 100,
		},
		Catalog: config.CatalogConfig{
			AnonymousUser: "anonymous",
		},
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		t.Fatalf("Failed to create JWT manager: %v", err)
	}
	authMW := auth.NewMiddleware(jwtManager, &cfg.Security)
	authHandlers := auth.NewHandlers(jwtManager, &cfg.Security)
	t.Cleanup(authHandlers.Close)

	router := NewRouter(NewHandler(db, cfg), authMW, authHandlers, cfg).Setup()

	return &testServer{
		t:      t,
		db:     db,
		jwt:    jwtManager,
		cfg:    cfg,
		router: router,
	}
}

// request sends a routed request. A non-empty user is attached as a session
// cookie; an empty user means anonymous.
func (s *testServer) request(method, path, user string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			s.t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		token, err := s.jwt.GenerateToken(user)
		if err != nil {
			s.t.Fatalf("Failed to generate token for %q: %v", user, err)
		}
		req.AddCookie(&http.Cookie{Name: s.cfg.Security.CookieName, Value: token})
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals a recorded JSON body into a generic map.
func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rec.Body.String(), err)
	}
	return body
}

func (s *testServer) makeCocktail(creator, name string) *models.Cocktail {
	s.t.Helper()

	cocktail, err := s.db.CreateCocktail(context.Background(), creator, name, "", "")
	if err != nil {
		s.t.Fatalf("Failed to create cocktail %q: %v", name, err)
	}
	return cocktail
}

func (s *testServer) makeList(creator, name string) *models.List {
	s.t.Helper()

	list, err := s.db.CreateList(context.Background(), creator, name, "", models.ListTypeCustom, true, true)
	if err != nil {
		s.t.Fatalf("Failed to create list %q: %v", name, err)
	}
	return list
}

func (s *testServer) members(listID int64) []int64 {
	s.t.Helper()

	members, err := s.db.Members(context.Background(), listID)
	if err != nil {
		s.t.Fatalf("Failed to read members of list %d: %v", listID, err)
	}
	return members
}

// checkFailure asserts the 200 {success:false, error:message} refusal shape.
func checkFailure(t *testing.T, rec *httptest.ResponseRecorder, message string) {
	t.Helper()

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200 for refusal, got %d", rec.Code)
	}
	body := decode(t, rec)
	if body["success"] != false {
		t.Errorf("Expected success=false, got %v", body["success"])
	}
	if body["error"] != message {
		t.Errorf("Expected error %q, got %v", message, body["error"])
	}
}
