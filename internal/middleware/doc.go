// Cordial - Cocktail Catalog and List Management
// Copyright 2026 Cordial Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cordialhq/cordial

/*
Package middleware provides the infrastructure middleware for the HTTP
surface: request ID tracking and Prometheus instrumentation. Both are
standard chi middleware (func(http.Handler) http.Handler) and are applied
router-wide, ahead of the authentication middleware in internal/auth.

Request IDs honor an upstream X-Request-ID header when present so log lines
can be correlated across a reverse proxy.
*/
package middleware
