// Cordial - Cocktail Catalog and List Management
// Copyright 2026 Cordial Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cordialhq/cordial

package auth

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/cordialhq/cordial/internal/config"
	"github.com/cordialhq/cordial/internal/logging"
)

type contextKey string

const userContextKey contextKey = "user"

// CurrentUser returns the authenticated username from the request context,
// or "" when the request is anonymous.
func CurrentUser(ctx context.Context) string {
	user, _ := ctx.Value(userContextKey).(string)
	return user
}

// ContextWithUser attaches an authenticated username to ctx. Exposed for
// handler tests.
func ContextWithUser(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, userContextKey, username)
}

// Middleware resolves the current user from the session cookie or the
// Authorization header and guards the endpoints that require one.
type Middleware struct {
	jwtManager *JWTManager
	cookieName string
	signInURL  string
}

// NewMiddleware creates the authentication middleware.
func NewMiddleware(jwtManager *JWTManager, cfg *config.SecurityConfig) *Middleware {
	return &Middleware{
		jwtManager: jwtManager,
		cookieName: cfg.CookieName,
		signInURL:  cfg.SignInURL,
	}
}

// RequireUser enforces authentication: requests without a valid session are
// redirected to the sign-in page with the original URL in the next
// parameter. Authenticated requests continue with the username in context.
func (m *Middleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, ok := m.resolveUser(r)
		if !ok {
			m.redirectToSignIn(w, r)
			return
		}
		ctx := ContextWithUser(r.Context(), username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ResolveUser is middleware for endpoints that work both ways: it attaches
// the username when a valid session is present and passes anonymous
// requests through untouched.
func (m *Middleware) ResolveUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if username, ok := m.resolveUser(r); ok {
			r = r.WithContext(ContextWithUser(r.Context(), username))
		}
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) resolveUser(r *http.Request) (string, bool) {
	token := m.extractToken(r)
	if token == "" {
		return "", false
	}
	claims, err := m.jwtManager.ValidateToken(token)
	if err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Session token rejected")
		return "", false
	}
	return claims.Username, true
}

// extractToken prefers the session cookie and falls back to a bearer token
// for API clients.
func (m *Middleware) extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(m.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

func (m *Middleware) redirectToSignIn(w http.ResponseWriter, r *http.Request) {
	target := m.signInURL + "?next=" + r.URL.Path
	http.Redirect(w, r, target, http.StatusFound)
}

// RateLimiter implements per-IP rate limiting with periodic cleanup of idle
// entries. Used to throttle login attempts.
type RateLimiter struct {
	limiters map[string]*rateLimiterEntry
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
	stop     chan struct{}
	stopOnce sync.Once
}

type rateLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewRateLimiter creates a rate limiter allowing r events per second with
// the given burst, per client IP.
func NewRateLimiter(r float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		limiters: make(map[string]*rateLimiterEntry),
		rate:     rate.Limit(r),
		burst:    burst,
		stop:     make(chan struct{}),
	}
	go rl.startCleanup(5 * time.Minute)
	return rl
}

// Allow reports whether a request from ip may proceed.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	entry, exists := rl.limiters[ip]
	if !exists {
		entry = &rateLimiterEntry{
			limiter:    rate.NewLimiter(rl.rate, rl.burst),
			lastAccess: time.Now(),
		}
		rl.limiters[ip] = entry
	} else {
		entry.lastAccess = time.Now()
	}
	limiter := entry.limiter
	rl.mu.Unlock()

	return limiter.Allow()
}

func (rl *RateLimiter) startCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stop:
			return
		}
	}
}

// cleanup removes entries idle for more than an hour.
func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	threshold := time.Now().Add(-1 * time.Hour)
	for ip, entry := range rl.limiters {
		if entry.lastAccess.Before(threshold) {
			delete(rl.limiters, ip)
		}
	}
}

// Stop stops the cleanup goroutine.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// clientIP extracts the remote IP for rate limiting. The port is stripped;
// proxy headers are deliberately not trusted here.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
