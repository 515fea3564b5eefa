// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package lockmap provides per-key reader/writer locks whose entries are
// released once the last holder unlocks.
package lockmap

import (
	"slices"
	"sync"

	"golang.org/x/exp/maps"

	"github.com/ava-labs/transfercoin/state"
)

type holderLock struct {
	holders int
	mu      sync.RWMutex
}

type Lockmap struct {
	l sync.Mutex
	m map[string]*holderLock
}

func New(initSize int) *Lockmap {
	return &Lockmap{
		m: make(map[string]*holderLock, initSize),
	}
}

func (l *Lockmap) Lock(key string) {
	l.lock(key, true)
}

func (l *Lockmap) Unlock(key string) {
	l.unlock(key, true)
}

func (l *Lockmap) RLock(key string) {
	l.lock(key, false)
}

func (l *Lockmap) RUnlock(key string) {
	l.unlock(key, false)
}

// LockKeys acquires a lock for every key in [keys] (write locks for keys
// with write permission, read locks otherwise) in sorted order and returns
// a function that releases them.
func (l *Lockmap) LockKeys(keys state.Keys) func() {
	sorted := maps.Keys(keys)
	slices.Sort(sorted)
	for _, k := range sorted {
		if keys[k].Has(state.Write) {
			l.Lock(k)
		} else {
			l.RLock(k)
		}
	}
	return func() {
		for i := len(sorted) - 1; i >= 0; i-- {
			k := sorted[i]
			if keys[k].Has(state.Write) {
				l.Unlock(k)
			} else {
				l.RUnlock(k)
			}
		}
	}
}

func (l *Lockmap) lock(key string, write bool) {
	l.l.Lock()
	hl, ok := l.m[key]
	if !ok {
		hl = &holderLock{}
		l.m[key] = hl
	}
	hl.holders++
	l.l.Unlock()

	if write {
		hl.mu.Lock()
	} else {
		hl.mu.RLock()
	}
}

func (l *Lockmap) unlock(key string, write bool) {
	l.l.Lock()
	defer l.l.Unlock()

	hl, ok := l.m[key]
	if !ok {
		return
	}
	if write {
		hl.mu.Unlock()
	} else {
		hl.mu.RUnlock()
	}
	hl.holders--
	if hl.holders == 0 {
		delete(l.m, key)
	}
}

// Locks returns the number of keys currently held or awaited.
func (l *Lockmap) Locks() int {
	l.l.Lock()
	defer l.l.Unlock()

	return len(l.m)
}
