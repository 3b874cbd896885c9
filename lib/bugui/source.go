// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bugui

import (
	"sync"

	"github.com/bureau-foundation/graveyard/lib/bugindex"
)

// Source provides bug data to the viewer. Snapshot returns the current
// store; Subscribe returns a channel that receives a value whenever
// the snapshot changes. Receivers should call Snapshot rather than
// trust the delivered value to be the latest.
type Source interface {
	Snapshot() *bugindex.Store
	Subscribe() <-chan *bugindex.Store
}

// StoreSource is a Source backed by a swappable *bugindex.Store. The
// store itself is immutable; Replace swaps the pointer and notifies
// subscribers. Safe for concurrent use: the file watcher calls Replace
// from its own goroutine while the model reads Snapshot.
type StoreSource struct {
	mutex       sync.RWMutex
	store       *bugindex.Store
	subscribers []chan *bugindex.Store
}

// NewStoreSource creates a StoreSource holding store.
func NewStoreSource(store *bugindex.Store) *StoreSource {
	return &StoreSource{store: store}
}

// Snapshot returns the current store.
func (source *StoreSource) Snapshot() *bugindex.Store {
	source.mutex.RLock()
	defer source.mutex.RUnlock()
	return source.store
}

// Subscribe returns a channel that receives the new store after every
// Replace. The channel holds one pending notification; when the
// subscriber has not yet drained it, further notifications are
// coalesced into the pending one.
func (source *StoreSource) Subscribe() <-chan *bugindex.Store {
	source.mutex.Lock()
	defer source.mutex.Unlock()
	channel := make(chan *bugindex.Store, 1)
	source.subscribers = append(source.subscribers, channel)
	return channel
}

// Replace swaps in a new store and notifies subscribers. A nil store
// is ignored.
func (source *StoreSource) Replace(store *bugindex.Store) {
	if store == nil {
		return
	}
	source.mutex.Lock()
	source.store = store
	subscribers := make([]chan *bugindex.Store, len(source.subscribers))
	copy(subscribers, source.subscribers)
	source.mutex.Unlock()

	for _, channel := range subscribers {
		select {
		case channel <- store:
		default:
		}
	}
}
