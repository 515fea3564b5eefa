// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import "github.com/ava-labs/transfercoin/codec"

// Entrypoint is the single function a program exposes to the runtime. It
// receives the id the program was invoked as, the accounts listed by the
// instruction and the raw instruction data.
type Entrypoint func(programID codec.Address, accounts []*AccountInfo, instructionData []byte) error
