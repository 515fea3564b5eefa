// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import "github.com/ava-labs/transfercoin/consts"

type Config struct {
	// MaxRecentBlockhashes is how many slots a signed transaction stays
	// valid for.
	MaxRecentBlockhashes int
	// MaxInstructions bounds the instructions in a single transaction.
	MaxInstructions int
	// LockMapSize is the initial capacity of the account lock table.
	LockMapSize int
}

func NewDefaultConfig() Config {
	return Config{
		MaxRecentBlockhashes: consts.MaxRecentBlockhashes,
		MaxInstructions:      64,
		LockMapSize:          1024,
	}
}
