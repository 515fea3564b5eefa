// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package system

import (
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"

	"github.com/ava-labs/transfercoin/codec"
	"github.com/ava-labs/transfercoin/consts"
)

const Name = "system"

// Address is the id of the system program. It is also the owner of every
// account that has not been assigned to a program.
var Address = codec.CreateAddress(consts.SystemID, ids.Empty)

// CreateWithSeed derives the address of an account from [base], a short
// [seed] and the [owner] program that will own it.
func CreateWithSeed(base codec.Address, seed string, owner codec.Address) (codec.Address, error) {
	if len(seed) > consts.MaxSeedLen {
		return codec.EmptyAddress, fmt.Errorf("%w: %d > %d", ErrMaxSeedLengthExceeded, len(seed), consts.MaxSeedLen)
	}
	b := make([]byte, 0, codec.AddressLen*2+len(seed))
	b = append(b, base[:]...)
	b = append(b, seed...)
	b = append(b, owner[:]...)
	return codec.CreateAddress(consts.SeedID, hashing.ComputeHash256Array(b)), nil
}
