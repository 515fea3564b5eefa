// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package system

import "errors"

var (
	ErrUnknownInstruction      = errors.New("unknown system instruction")
	ErrMaxSeedLengthExceeded   = errors.New("max seed length exceeded")
	ErrAddressWithSeedMismatch = errors.New("address with seed mismatch")
	ErrInvalidAccountDataLen   = errors.New("invalid account data length")
	ErrTransferFromDataAccount = errors.New("from account must not carry data")
)
