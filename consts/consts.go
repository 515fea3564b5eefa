// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

const (
	IDLen      = 32
	ByteLen    = 1
	BoolLen    = 1
	Uint32Len  = 4
	Uint64Len  = 8
	MaxUint32  = ^uint32(0)
	MaxUint64  = ^uint64(0)
	MaxUint    = ^uint(0)
	MaxInt     = int(MaxUint >> 1)
	MaxSeedLen = 32

	// MaxRecentBlockhashes is the number of blockhashes a transaction may
	// reference before it is considered expired.
	MaxRecentBlockhashes = 150

	// MaxAccountDataLen bounds the space the system program will allocate.
	MaxAccountDataLen = 10 * 1024 * 1024

	// LamportsPerCoin is the number of base units in one coin.
	LamportsPerCoin = 1_000_000_000
)

// Address type prefixes.
const (
	SystemID uint8 = iota
	ED25519ID
	ProgramID
	SeedID
	LoaderID
)
