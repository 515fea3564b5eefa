// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "errors"

var (
	ErrNoInstructions          = errors.New("transaction has no instructions")
	ErrMissingSigner           = errors.New("missing key for signer")
	ErrInvalidSignatureCount   = errors.New("invalid signature count")
	ErrInvalidSignature        = errors.New("invalid signature")
	ErrTransactionNotSigned    = errors.New("transaction is not signed")
	ErrInvalidTransactionBytes = errors.New("invalid transaction bytes")
)
