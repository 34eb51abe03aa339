// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-savings-jar/internal/logger"
)

// IdentityWatcher forwards every change of the signed-in identity to the
// stores. Consumers are called one identity at a time, in order; when
// identities change faster than the stores re-list, only the latest
// pending one is delivered.
type IdentityWatcher struct {
	source    SessionSource
	consumers []IdentityConsumer
	logger    *logger.Logger

	mu          sync.Mutex
	cancel      context.CancelFunc
	unsubscribe func()
	wg          sync.WaitGroup

	pendingMu sync.Mutex
	last      *string
}

// NewIdentityWatcher creates a watcher that is idle until Start is called.
func NewIdentityWatcher(source SessionSource, logger *logger.Logger, consumers ...IdentityConsumer) *IdentityWatcher {
	return &IdentityWatcher{
		source:    source,
		consumers: consumers,
		logger:    logger,
	}
}

// Start stops any previous run, subscribes to the session source and
// delivers the current identity once the source is ready. The background
// goroutine exits when ctx is cancelled or Stop is called.
func (w *IdentityWatcher) Start(ctx context.Context) {
	w.Stop()

	changes := make(chan string, 1)

	w.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.pendingMu.Lock()
	w.last = nil
	w.pendingMu.Unlock()
	w.unsubscribe = w.source.Subscribe(func(state SessionState) {
		w.offer(changes, state)
	})
	w.wg.Add(1)
	w.mu.Unlock()

	w.offer(changes, w.source.State())

	go func() {
		defer w.wg.Done()

		for {
			select {
			case <-jobCtx.Done():
				return
			case userID := <-changes:
				w.deliver(jobCtx, userID)
			}
		}
	}()
}

// offer queues the state's identity if it differs from the last one
// queued, replacing an undelivered older identity.
func (w *IdentityWatcher) offer(changes chan string, state SessionState) {
	if state.Status != SessionReady {
		return
	}

	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	userID := state.UserID()
	if w.last != nil && *w.last == userID {
		return
	}
	w.last = &userID

	select {
	case changes <- userID:
	default:
		select {
		case <-changes:
		default:
		}
		changes <- userID
	}
}

func (w *IdentityWatcher) deliver(ctx context.Context, userID string) {
	for _, consumer := range w.consumers {
		if err := consumer.SetIdentity(ctx, userID); err != nil {
			w.logger.Err(err).Str("func", "*IdentityWatcher.deliver").Str("user_id", userID).Msg("identity change not applied")
		}
	}
}

// Stop unsubscribes, cancels the background goroutine and blocks until it
// has exited. Safe to call when the watcher is not running.
func (w *IdentityWatcher) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	unsubscribe := w.unsubscribe
	w.cancel = nil
	w.unsubscribe = nil
	w.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}
