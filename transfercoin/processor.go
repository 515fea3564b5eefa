// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package transfercoin

import (
	"github.com/ava-labs/transfercoin/codec"
	"github.com/ava-labs/transfercoin/program"
)

// Name is the builtin name the program is registered under.
const Name = "transfercoin"

var _ program.Entrypoint = ProcessInstruction

// ProcessInstruction increments the counter stored in the first account.
//
// The instruction data is ignored; callers may vary it only to make
// otherwise identical transactions distinct. Ownership and writability of
// the account are checked by the runtime, not here.
func ProcessInstruction(_ codec.Address, accounts []*program.AccountInfo, _ []byte) error {
	if len(accounts) == 0 {
		return ErrMissingAccount
	}
	account := accounts[0]

	s, err := UnpackCounterState(account.Data)
	if err != nil {
		return err
	}
	s.Increment()
	return s.PackInto(account.Data)
}
