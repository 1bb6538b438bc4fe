// Cordial - Cocktail Catalog and List Management
// Copyright 2026 Cordial Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cordialhq/cordial

/*
Package api provides the HTTP surface for the catalog using the chi router.

Two response conventions coexist and are both load-bearing:

  - The list endpoints (favorite toggle, bulk operations, single add/remove,
    list create/edit) answer application-level failures with HTTP 200 and a
    {success: false, error} body. Non-200 codes are reserved for
    authentication (302 to the sign-in page) and genuinely missing lists
    (404). Frontend code switches on the success flag, not the status code.

  - The /api/v1 endpoints (health, auth, browse) use the envelope in
    internal/models with conventional status codes.

Method enforcement for the list endpoints happens inside the handlers, not
via per-method route registration, because a wrong-method call must produce
the JSON refusal above rather than chi's plain 405.
*/
package api
