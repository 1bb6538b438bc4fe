// Cordial - Cocktail Catalog and List Management
// Copyright 2026 Cordial Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cordialhq/cordial

// Package config loads and validates the application configuration using
// koanf v2 with layered sources: built-in defaults, an optional YAML file,
// and CORDIAL_* environment variables, in ascending precedence.
package config
