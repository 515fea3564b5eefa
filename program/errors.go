// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import "errors"

var (
	ErrNotEnoughAccountKeys     = errors.New("not enough account keys")
	ErrInvalidInstructionData   = errors.New("invalid instruction data")
	ErrInvalidAccountData       = errors.New("invalid account data")
	ErrMissingRequiredSignature = errors.New("missing required signature")
	ErrAccountAlreadyInUse      = errors.New("account already in use")
	ErrIncorrectProgramID       = errors.New("incorrect program id")
	ErrInsufficientFunds        = errors.New("insufficient funds")
	ErrInvalidArgument          = errors.New("invalid argument")
)
