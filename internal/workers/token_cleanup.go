// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-savings-jar/internal/logger"
	"github.com/MKhiriev/go-savings-jar/internal/store"
)

// TokenCleanupWorker purges consumed and expired sign-in tokens.
type TokenCleanupWorker struct {
	tokens   store.OneTimeTokenRepository
	interval time.Duration
	now      func() time.Time
	logger   *logger.Logger
}

func NewTokenCleanupWorker(tokens store.OneTimeTokenRepository, interval time.Duration, logger *logger.Logger) *TokenCleanupWorker {
	return &TokenCleanupWorker{
		tokens:   tokens,
		interval: interval,
		now:      time.Now,
		logger:   logger,
	}
}

// Run sweeps once immediately and then on every tick until ctx is done.
func (w *TokenCleanupWorker) Run(ctx context.Context) {
	w.logger.Info().Dur("interval", w.interval).Msg("token cleanup worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("token cleanup worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *TokenCleanupWorker) sweep(ctx context.Context) {
	deleted, err := w.tokens.DeleteStaleTokens(ctx, w.now().UTC())
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		w.logger.Err(err).Str("func", "*TokenCleanupWorker.sweep").Msg("failed to delete stale tokens")
		return
	}

	if deleted > 0 {
		w.logger.Debug().Int64("deleted", deleted).Msg("stale sign-in tokens deleted")
	}
}
