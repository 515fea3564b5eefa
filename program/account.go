// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import (
	"fmt"

	"github.com/ava-labs/transfercoin/codec"
)

// AccountInfo is the view of one account handed to a program for the
// duration of a single invocation. Programs may mutate Lamports and Data in
// place; the runtime decides afterwards whether the changes are allowed and
// must not be retained past the call.
type AccountInfo struct {
	Key        codec.Address
	IsSigner   bool
	IsWritable bool
	Lamports   uint64
	Owner      codec.Address
	Executable bool
	Data       []byte
}

func (a *AccountInfo) String() string {
	return fmt.Sprintf(
		"%s (signer=%t writable=%t lamports=%d owner=%s executable=%t len=%d)",
		a.Key, a.IsSigner, a.IsWritable, a.Lamports, a.Owner, a.Executable, len(a.Data),
	)
}

// AccountIterator walks the accounts passed to an instruction in order.
type AccountIterator struct {
	accounts []*AccountInfo
	next     int
}

func NewAccountIterator(accounts []*AccountInfo) *AccountIterator {
	return &AccountIterator{accounts: accounts}
}

// Next returns the next account or [ErrNotEnoughAccountKeys].
func (it *AccountIterator) Next() (*AccountInfo, error) {
	if it.next >= len(it.accounts) {
		return nil, ErrNotEnoughAccountKeys
	}
	a := it.accounts[it.next]
	it.next++
	return a, nil
}
