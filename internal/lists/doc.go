// Cordial - Cocktail Catalog and List Management
// Copyright 2026 Cordial Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cordialhq/cordial

// Package lists implements the list-membership services on top of the
// storage layer: favorites toggling, creations-list synchronization, and
// the gated bulk operation pipeline (remove, copy, move, clone).
//
// These services are the only writers of membership rows. Each mutating
// call runs in a single storage transaction, so a failed gate or a failed
// execution never leaves a partial membership change behind.
package lists
