// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"errors"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/transfercoin/codec"
	"github.com/ava-labs/transfercoin/consts"
	"github.com/ava-labs/transfercoin/crypto/ed25519"
)

var ErrNotED25519Address = errors.New("address is not an ed25519 address")

// NewED25519Address returns the ledger address controlled by [pk].
func NewED25519Address(pk ed25519.PublicKey) codec.Address {
	return codec.CreateAddress(consts.ED25519ID, ids.ID(pk))
}

// PublicKey recovers the ed25519 public key embedded in [addr].
func PublicKey(addr codec.Address) (ed25519.PublicKey, error) {
	if addr.TypeID() != consts.ED25519ID {
		return ed25519.EmptyPublicKey, ErrNotED25519Address
	}
	return ed25519.PublicKey(addr.ID()), nil
}
