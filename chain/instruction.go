// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "github.com/ava-labs/transfercoin/codec"

// AccountMeta describes how an instruction uses an account.
type AccountMeta struct {
	Address    codec.Address `json:"address"`
	IsSigner   bool          `json:"isSigner"`
	IsWritable bool          `json:"isWritable"`
}

// NewAccountMeta returns a writable account reference.
func NewAccountMeta(addr codec.Address, isSigner bool) AccountMeta {
	return AccountMeta{Address: addr, IsSigner: isSigner, IsWritable: true}
}

// NewReadonlyAccountMeta returns a read-only account reference.
func NewReadonlyAccountMeta(addr codec.Address, isSigner bool) AccountMeta {
	return AccountMeta{Address: addr, IsSigner: isSigner}
}

// Instruction invokes one program with an ordered list of accounts and an
// opaque payload.
type Instruction struct {
	ProgramID codec.Address `json:"programID"`
	Accounts  []AccountMeta `json:"accounts"`
	Data      []byte        `json:"data"`
}

func NewInstruction(programID codec.Address, data []byte, accounts ...AccountMeta) Instruction {
	return Instruction{
		ProgramID: programID,
		Accounts:  accounts,
		Data:      data,
	}
}
