// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"sort"
	"sync"
)

// Status is the lifecycle stage of a store's collection.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// StoreState is a snapshot of a collection store.
type StoreState[T any] struct {
	// UserID is the identity the collection belongs to.
	UserID string
	Items  []T
	Status Status
	// Err is the last failure. A failed list keeps the previous Items.
	Err error
}

// observers fans state snapshots out to subscribers. Callbacks run on the
// publishing goroutine, outside any lock of the owner.
type observers[S any] struct {
	mu     sync.Mutex
	nextID int
	fns    map[int]func(S)
}

// subscribe registers fn; the returned function removes it and may be
// called more than once.
func (o *observers[S]) subscribe(fn func(S)) func() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.fns == nil {
		o.fns = make(map[int]func(S))
	}
	id := o.nextID
	o.nextID++
	o.fns[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			delete(o.fns, id)
			o.mu.Unlock()
		})
	}
}

// publish calls every subscriber in registration order.
func (o *observers[S]) publish(state S) {
	o.mu.Lock()
	ids := make([]int, 0, len(o.fns))
	for id := range o.fns {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(S), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, o.fns[id])
	}
	o.mu.Unlock()

	for _, fn := range fns {
		fn(state)
	}
}
