// Cordial - Cocktail Catalog and List Management
// Copyright 2026 Cordial Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cordialhq/cordial

package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	API      APIConfig      `koanf:"api"`
	Security SecurityConfig `koanf:"security"`
	Catalog  CatalogConfig  `koanf:"catalog"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // Number of DuckDB threads (0 = use NumCPU)
}

// APIConfig holds pagination and rate-limit settings.
type APIConfig struct {
	DefaultPageSize   int           `koanf:"default_page_size"`
	MaxPageSize       int           `koanf:"max_page_size"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// SecurityConfig holds authentication settings.
//
// Cordial issues stateless HS256 session tokens. The admin credential pair is
// the bootstrap account; regular accounts are provisioned out of band and
// verified by the same login handler.
type SecurityConfig struct {
	JWTSecret      string        `koanf:"jwt_secret"`
	SessionTimeout time.Duration `koanf:"session_timeout"`
	AdminUsername  string        `koanf:"admin_username"`
	AdminPassword  string        `koanf:"admin_password"`
	CORSOrigins    []string      `koanf:"cors_origins"`
	SignInURL      string        `koanf:"sign_in_url"`
	CookieName     string        `koanf:"cookie_name"`
	CookieSecure   bool          `koanf:"cookie_secure"`
	LoginRateLimit float64       `koanf:"login_rate_limit"` // login attempts per second
	LoginRateBurst int           `koanf:"login_rate_burst"`
}

// CatalogConfig holds catalog behavior settings.
type CatalogConfig struct {
	// AnonymousUser is the sentinel account cocktails are reassigned to when
	// their author withdraws. Its creations list is never populated.
	AnonymousUser string `koanf:"anonymous_user"`
	// ResyncInterval is how often creations lists are reconciled against
	// cocktail ownership in the background. Zero disables the worker.
	ResyncInterval time.Duration `koanf:"resync_interval"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`
	// Format is json (production) or console (development).
	Format string `koanf:"format"`
	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// jwtSecretMinLength is the minimum acceptable JWT secret length. Shorter
// secrets make HS256 tokens brute-forceable.
const jwtSecretMinLength = 32

// Validate checks the configuration for invalid or inconsistent values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Security.JWTSecret != "" && len(c.Security.JWTSecret) < jwtSecretMinLength {
		return fmt.Errorf("security.jwt_secret must be at least %d characters", jwtSecretMinLength)
	}
	if c.API.DefaultPageSize < 1 {
		return fmt.Errorf("api.default_page_size must be positive, got %d", c.API.DefaultPageSize)
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("api.max_page_size (%d) must be >= api.default_page_size (%d)",
			c.API.MaxPageSize, c.API.DefaultPageSize)
	}
	if c.Catalog.AnonymousUser == "" {
		return fmt.Errorf("catalog.anonymous_user is required")
	}
	return nil
}
