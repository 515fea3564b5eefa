// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"

	"github.com/ava-labs/avalanchego/database"
)

var _ Mutable = (*SimpleMutable)(nil)

type change struct {
	value  []byte
	delete bool
}

// SimpleMutable buffers writes on top of a [Database] until Commit is
// called. Nothing reaches the database if the buffer is dropped.
type SimpleMutable struct {
	db Database

	changes map[string]change
}

func NewSimpleMutable(db Database) *SimpleMutable {
	return &SimpleMutable{db: db, changes: make(map[string]change)}
}

func (s *SimpleMutable) Get(_ context.Context, k string) ([]byte, error) {
	if c, ok := s.changes[k]; ok {
		if c.delete {
			return nil, database.ErrNotFound
		}
		return c.value, nil
	}
	return s.db.Get([]byte(k))
}

func (s *SimpleMutable) Put(_ context.Context, k string, v []byte) error {
	s.changes[k] = change{value: v}
	return nil
}

func (s *SimpleMutable) Delete(_ context.Context, k string) error {
	s.changes[k] = change{delete: true}
	return nil
}

// Len returns the number of pending changes.
func (s *SimpleMutable) Len() int {
	return len(s.changes)
}

// Commit writes all pending changes to the database in a single batch.
func (s *SimpleMutable) Commit(context.Context) error {
	if len(s.changes) == 0 {
		return nil
	}
	batch := s.db.NewBatch()
	for k, c := range s.changes {
		var err error
		if c.delete {
			err = batch.Delete([]byte(k))
		} else {
			err = batch.Put([]byte(k), c.value)
		}
		if err != nil {
			return err
		}
	}
	if err := batch.Write(); err != nil {
		return err
	}
	s.changes = make(map[string]change)
	return nil
}
