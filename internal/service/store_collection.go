// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-savings-jar/internal/adapter"
	"github.com/MKhiriev/go-savings-jar/internal/logger"
	"github.com/MKhiriev/go-savings-jar/models"
)

// collection is the identity-scoped list machinery shared by the goal and
// record stores. Operations are serialised by opMu, held across the remote
// calls of one operation; mu only guards the state snapshot, so identity
// switches are visible to an in-flight list.
type collection[T any] struct {
	data   adapter.DataService
	table  string
	orders []adapter.OrderBy
	logger *logger.Logger

	// listed runs after every committed list.
	listed func(ctx context.Context, items []T)

	opMu      sync.Mutex
	mu        sync.RWMutex
	state     StoreState[T]
	observers observers[StoreState[T]]
}

func newCollection[T any](data adapter.DataService, table string, logger *logger.Logger, orders ...adapter.OrderBy) *collection[T] {
	return &collection[T]{
		data:   data,
		table:  table,
		orders: orders,
		logger: logger,
		state:  StoreState[T]{Status: StatusIdle},
	}
}

// State returns a snapshot of the collection.
func (c *collection[T]) State() StoreState[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snapshot := c.state
	snapshot.Items = append([]T(nil), c.state.Items...)
	return snapshot
}

// Subscribe registers fn for every state change.
func (c *collection[T]) Subscribe(fn func(StoreState[T])) (unsubscribe func()) {
	return c.observers.subscribe(fn)
}

// UserID returns the identity the store currently serves.
func (c *collection[T]) UserID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.UserID
}

// SetIdentity switches the owning identity and lists its rows. An empty
// userID empties the collection without a remote call. Rows of a previous
// identity never outlive the switch, even when the new list fails.
func (c *collection[T]) SetIdentity(ctx context.Context, userID string) error {
	c.mu.Lock()
	if c.state.UserID != userID {
		c.state.Items = nil
		c.state.Err = nil
	}
	c.state.UserID = userID
	if userID == "" {
		c.state.Items = nil
		c.state.Status = StatusReady
		c.state.Err = nil
		c.mu.Unlock()
		c.publish()
		return nil
	}
	c.mu.Unlock()

	c.opMu.Lock()
	defer c.opMu.Unlock()
	return c.listLocked(ctx)
}

// Refresh re-fetches the full collection.
func (c *collection[T]) Refresh(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	return c.listLocked(ctx)
}

// listLocked lists the rows of the current identity. The result is
// committed only if that identity is still current once the call returns.
// Callers hold opMu.
func (c *collection[T]) listLocked(ctx context.Context) error {
	log := logger.FromContext(ctx)

	userID := c.UserID()
	if userID == "" {
		return ErrNoIdentity
	}

	c.mu.Lock()
	c.state.Status = StatusLoading
	c.mu.Unlock()
	c.publish()

	q := adapter.From(c.table).Eq(models.ColumnUserID, userID)
	q.Orders = append(q.Orders, c.orders...)

	var items []T
	err := c.data.Select(ctx, q, &items)

	c.mu.Lock()
	if c.state.UserID != userID {
		c.mu.Unlock()
		log.Debug().Str("table", c.table).Str("user_id", userID).Msg("discarding stale list result")
		return nil
	}
	if err != nil {
		c.state.Status = StatusError
		c.state.Err = err
		c.mu.Unlock()
		c.publish()
		log.Err(err).Str("table", c.table).Str("user_id", userID).Msg("list failed")
		return err
	}
	if items == nil {
		items = []T{}
	}
	c.state.Items = items
	c.state.Status = StatusReady
	c.state.Err = nil
	c.mu.Unlock()

	if c.listed != nil {
		c.listed(ctx, items)
	}
	c.publish()
	return nil
}

// mutate runs fn for the current identity and re-lists on success. A
// failure is recorded in the state while the collection and status are
// kept. Without an identity fn is not called.
func (c *collection[T]) mutate(ctx context.Context, fn func(ctx context.Context, userID string) error) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	userID := c.UserID()
	if userID == "" {
		return ErrNoIdentity
	}

	if err := fn(ctx, userID); err != nil {
		c.mu.Lock()
		if c.state.UserID == userID {
			c.state.Err = err
		}
		c.mu.Unlock()
		c.publish()
		logger.FromContext(ctx).Err(err).Str("table", c.table).Str("user_id", userID).Msg("mutation failed")
		return err
	}

	// the mutation stands even if the re-list fails; that error lives in
	// the state
	_ = c.listLocked(ctx)
	return nil
}

// withinTx runs fn in one transaction when the data service supports it.
func (c *collection[T]) withinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if tx, ok := c.data.(adapter.Transactor); ok {
		return tx.WithinTx(ctx, fn)
	}
	return fn(ctx)
}

func (c *collection[T]) publish() {
	c.observers.publish(c.State())
}
