// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"bytes"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/btcsuite/btcd/btcutil/base58"

	"github.com/ava-labs/transfercoin/consts"
)

const AddressLen = 1 + consts.IDLen

// Address represents the 33 byte address of a ledger account: a one byte
// type prefix followed by a 32 byte id.
type Address [AddressLen]byte

var EmptyAddress = Address{}

// CreateAddress returns [Address] made from concatenating
// [typeID] with [id].
func CreateAddress(typeID uint8, id ids.ID) Address {
	var a Address
	a[0] = typeID
	copy(a[1:], id[:])
	return a
}

// TypeID returns the type prefix of a.
func (a Address) TypeID() uint8 { return a[0] }

// ID returns the 32 byte id of a without its type prefix.
func (a Address) ID() ids.ID {
	var id ids.ID
	copy(id[:], a[1:])
	return id
}

// Compare orders addresses bytewise.
func (a Address) Compare(b Address) int {
	return bytes.Compare(a[:], b[:])
}

// String implements fmt.Stringer using base58.
func (a Address) String() string {
	return base58.Encode(a[:])
}

// StringToAddress parses a base58 encoded address.
func StringToAddress(s string) (Address, error) {
	b := base58.Decode(s)
	if len(b) != AddressLen {
		return EmptyAddress, fmt.Errorf("%w: decoded %d bytes", ErrInvalidAddress, len(b))
	}
	return Address(b), nil
}

// MarshalText returns the base58 representation of a.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText parses a base58-encoded address.
func (a *Address) UnmarshalText(input []byte) error {
	parsed, err := StringToAddress(string(input))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
