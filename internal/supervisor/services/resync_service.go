// Cordial - Cocktail Catalog and List Management
// Copyright 2026 Cordial Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cordialhq/cordial

package services

import (
	"context"
	"time"

	"github.com/cordialhq/cordial/internal/logging"
)

// Resyncer is the reconciliation entry point the worker drives.
type Resyncer interface {
	ResyncAll(ctx context.Context) error
}

// ResyncService periodically reconciles creations lists against cocktail
// ownership. The lists are kept consistent synchronously on every write;
// this worker only repairs drift left behind by failed follow-up updates.
type ResyncService struct {
	resyncer Resyncer
	interval time.Duration
}

// NewResyncService creates the periodic reconciliation worker.
func NewResyncService(resyncer Resyncer, interval time.Duration) *ResyncService {
	return &ResyncService{
		resyncer: resyncer,
		interval: interval,
	}
}

// Serve implements suture.Service. A failing sweep is logged and retried on
// the next tick rather than returned, which would make the supervisor
// restart a perfectly healthy worker.
func (s *ResyncService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.resyncer.ResyncAll(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logging.Error().Err(err).Msg("Creations resync sweep failed")
			}
		}
	}
}

// String identifies the service in supervisor logs.
func (s *ResyncService) String() string {
	return "creations-resync"
}
