// Cordial - Cocktail Catalog and List Management
// Copyright 2026 Cordial Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cordialhq/cordial

package auth

import (
	"crypto/subtle"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/cordialhq/cordial/internal/config"
	"github.com/cordialhq/cordial/internal/logging"
	"github.com/cordialhq/cordial/internal/metrics"
)

// Handlers provides the login and logout endpoints.
type Handlers struct {
	jwtManager  *JWTManager
	cfg         *config.SecurityConfig
	rateLimiter *RateLimiter
}

// NewHandlers creates the auth handlers with a login rate limiter bound to
// the configured attempt budget.
func NewHandlers(jwtManager *JWTManager, cfg *config.SecurityConfig) *Handlers {
	return &Handlers{
		jwtManager:  jwtManager,
		cfg:         cfg,
		rateLimiter: NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateBurst),
	}
}

// Close stops the rate limiter's cleanup goroutine.
func (h *Handlers) Close() {
	h.rateLimiter.Stop()
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Login authenticates the bootstrap credential pair and mints a session
// token, returned in the body and set as an HTTP-only cookie.
// POST /api/v1/auth/login
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	ip := clientIP(r)
	if !h.rateLimiter.Allow(ip) {
		logging.Ctx(r.Context()).Warn().Str("ip", ip).Msg("Login rate limit exceeded")
		metrics.RecordLoginAttempt("rate_limited")
		http.Error(w, "Too many login attempts", http.StatusTooManyRequests)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if !h.credentialsValid(req.Username, req.Password) {
		logging.Ctx(r.Context()).Warn().Str("ip", ip).Msg("Login failed")
		metrics.RecordLoginAttempt("failure")
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.jwtManager.GenerateToken(req.Username)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to generate session token")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cfg.SessionTimeout.Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	metrics.RecordLoginAttempt("success")

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(loginResponse{Token: token, Username: req.Username}); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to encode login response")
	}
}

// credentialsValid compares against the bootstrap account in constant time.
func (h *Handlers) credentialsValid(username, password string) bool {
	if h.cfg.AdminUsername == "" || h.cfg.AdminPassword == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(h.cfg.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(h.cfg.AdminPassword)) == 1
	return userOK && passOK
}

// Logout clears the session cookie. Tokens are stateless, so the cookie is
// the only thing to revoke.
// POST /api/v1/auth/logout
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"message": "Logged out successfully"}); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to encode logout response")
	}
}
