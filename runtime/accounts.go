// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"context"

	"github.com/ava-labs/avalanchego/utils/set"

	"github.com/ava-labs/transfercoin/codec"
	"github.com/ava-labs/transfercoin/state"
	"github.com/ava-labs/transfercoin/storage"
	"github.com/ava-labs/transfercoin/system"
)

// accountCache holds the accounts loaded by one transaction and tracks
// which of them instructions have written.
type accountCache struct {
	im       state.Immutable
	accounts map[codec.Address]*storage.Account
	dirty    set.Set[codec.Address]
}

func newAccountCache(im state.Immutable) *accountCache {
	return &accountCache{
		im:       im,
		accounts: make(map[codec.Address]*storage.Account),
		dirty:    set.Set[codec.Address]{},
	}
}

// get returns the account at [addr]. Missing accounts read as empty and
// owned by the system program. The returned account must not be modified.
func (c *accountCache) get(ctx context.Context, addr codec.Address) (*storage.Account, error) {
	if a, ok := c.accounts[addr]; ok {
		return a, nil
	}
	a, exists, err := storage.GetAccount(ctx, c.im, addr)
	if err != nil {
		return nil, err
	}
	if !exists {
		a = &storage.Account{Owner: system.Address}
	}
	c.accounts[addr] = a
	return a, nil
}

func (c *accountCache) set(addr codec.Address, a *storage.Account) {
	c.accounts[addr] = a
	c.dirty.Add(addr)
}

func (c *accountCache) modified() map[codec.Address]*storage.Account {
	m := make(map[codec.Address]*storage.Account, c.dirty.Len())
	for addr := range c.dirty {
		m[addr] = c.accounts[addr]
	}
	return m
}
