// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package system

import (
	"github.com/ava-labs/transfercoin/chain"
	"github.com/ava-labs/transfercoin/codec"
)

const (
	CreateAccount uint8 = iota
	CreateAccountWithSeed
	Transfer
	Assign
)

// Instruction is the payload of every system program instruction. Fields
// that a given [Type] does not use are left zero.
type Instruction struct {
	Type     uint8
	Lamports uint64
	Space    uint64
	Owner    codec.Address
	Base     codec.Address
	Seed     string
}

func (i Instruction) build(accounts ...chain.AccountMeta) (chain.Instruction, error) {
	data, err := codec.Serialize(i)
	if err != nil {
		return chain.Instruction{}, err
	}
	return chain.NewInstruction(Address, data, accounts...), nil
}

// NewCreateAccount moves [lamports] from [from] into the new account [to],
// allocates [space] zeroed bytes and assigns it to [owner]. Both accounts
// must sign.
func NewCreateAccount(from, to codec.Address, lamports, space uint64, owner codec.Address) (chain.Instruction, error) {
	return Instruction{
		Type:     CreateAccount,
		Lamports: lamports,
		Space:    space,
		Owner:    owner,
	}.build(
		chain.NewAccountMeta(from, true),
		chain.NewAccountMeta(to, true),
	)
}

// NewCreateAccountWithSeed is like [NewCreateAccount] for an address derived
// with [CreateWithSeed]. Only [from] and [base] sign.
func NewCreateAccountWithSeed(
	from codec.Address,
	to codec.Address,
	base codec.Address,
	seed string,
	lamports uint64,
	space uint64,
	owner codec.Address,
) (chain.Instruction, error) {
	accounts := []chain.AccountMeta{
		chain.NewAccountMeta(from, true),
		chain.NewAccountMeta(to, false),
	}
	if base != from {
		accounts = append(accounts, chain.NewReadonlyAccountMeta(base, true))
	}
	return Instruction{
		Type:     CreateAccountWithSeed,
		Lamports: lamports,
		Space:    space,
		Owner:    owner,
		Base:     base,
		Seed:     seed,
	}.build(accounts...)
}

func NewTransfer(from, to codec.Address, lamports uint64) (chain.Instruction, error) {
	return Instruction{
		Type:     Transfer,
		Lamports: lamports,
	}.build(
		chain.NewAccountMeta(from, true),
		chain.NewAccountMeta(to, false),
	)
}

func NewAssign(addr codec.Address, owner codec.Address) (chain.Instruction, error) {
	return Instruction{
		Type:  Assign,
		Owner: owner,
	}.build(chain.NewAccountMeta(addr, true))
}
