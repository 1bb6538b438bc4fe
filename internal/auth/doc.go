// Cordial - Cocktail Catalog and List Management
// Copyright 2026 Cordial Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cordialhq/cordial

// Package auth provides session authentication for the catalog: stateless
// HS256 session tokens, the login/logout handlers that mint and clear them,
// and middleware that resolves the current user for every list operation.
//
// Unauthenticated browser requests are redirected to the sign-in page rather
// than answered with 401; the list endpoints are page-adjacent and the
// redirect is part of their contract.
package auth
