// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"errors"
	"slices"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/transfercoin/codec"
	"github.com/ava-labs/transfercoin/state"
)

const (
	accountPrefix = 0x0
	keyPrefix     = 0x1
)

// Account is the persisted record behind every ledger address.
type Account struct {
	Lamports   uint64
	Owner      codec.Address
	Executable bool
	Data       []byte
}

// Clone returns a deep copy of a.
func (a *Account) Clone() *Account {
	return &Account{
		Lamports:   a.Lamports,
		Owner:      a.Owner,
		Executable: a.Executable,
		Data:       slices.Clone(a.Data),
	}
}

// IsEmpty reports whether the account holds nothing, in which case it is
// not persisted.
func (a *Account) IsEmpty() bool {
	return a.Lamports == 0 && len(a.Data) == 0 && !a.Executable && a.Owner == codec.EmptyAddress
}

func AccountKey(addr codec.Address) string {
	k := make([]byte, 1+codec.AddressLen)
	k[0] = accountPrefix
	copy(k[1:], addr[:])
	return string(k)
}

// [address] -> [account]
func GetAccount(
	ctx context.Context,
	im state.Immutable,
	addr codec.Address,
) (
	*Account,
	bool, // exists
	error,
) {
	v, err := im.Get(ctx, AccountKey(addr))
	if errors.Is(err, database.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	a, err := codec.Deserialize[Account](v)
	if err != nil {
		return nil, false, err
	}
	return a, true, nil
}

// SetAccount stores [account] at [addr]. Empty accounts are deleted.
func SetAccount(
	ctx context.Context,
	mu state.Mutable,
	addr codec.Address,
	account *Account,
) error {
	if account.IsEmpty() {
		return mu.Delete(ctx, AccountKey(addr))
	}
	v, err := codec.Serialize(*account)
	if err != nil {
		return err
	}
	return mu.Put(ctx, AccountKey(addr), v)
}
