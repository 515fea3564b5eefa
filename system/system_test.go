// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package system

import (
	"strings"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/transfercoin/codec"
	"github.com/ava-labs/transfercoin/consts"
	"github.com/ava-labs/transfercoin/program"
)

func testAddress(typeID uint8) codec.Address {
	return codec.CreateAddress(typeID, ids.GenerateTestID())
}

func toInfos(accounts ...*program.AccountInfo) []*program.AccountInfo {
	return accounts
}

func TestCreateWithSeed(t *testing.T) {
	require := require.New(t)

	base := testAddress(consts.ED25519ID)
	owner := testAddress(consts.ProgramID)

	a, err := CreateWithSeed(base, "transfer", owner)
	require.NoError(err)
	require.Equal(consts.SeedID, a.TypeID())

	b, err := CreateWithSeed(base, "transfer", owner)
	require.NoError(err)
	require.Equal(a, b)

	c, err := CreateWithSeed(base, "other", owner)
	require.NoError(err)
	require.NotEqual(a, c)

	d, err := CreateWithSeed(base, "transfer", testAddress(consts.ProgramID))
	require.NoError(err)
	require.NotEqual(a, d)

	_, err = CreateWithSeed(base, strings.Repeat("s", consts.MaxSeedLen+1), owner)
	require.ErrorIs(err, ErrMaxSeedLengthExceeded)
}

func TestAddressIsEmpty(t *testing.T) {
	require.Equal(t, codec.EmptyAddress, Address)
}

func TestCreateAccount(t *testing.T) {
	require := require.New(t)

	owner := testAddress(consts.ProgramID)
	from := &program.AccountInfo{Key: testAddress(consts.ED25519ID), IsSigner: true, IsWritable: true, Lamports: 100, Owner: Address}
	to := &program.AccountInfo{Key: testAddress(consts.ED25519ID), IsSigner: true, IsWritable: true, Owner: Address}

	ix, err := NewCreateAccount(from.Key, to.Key, 40, 4, owner)
	require.NoError(err)
	require.Equal(Address, ix.ProgramID)
	require.Len(ix.Accounts, 2)

	require.NoError(ProcessInstruction(Address, toInfos(from, to), ix.Data))
	require.Equal(uint64(60), from.Lamports)
	require.Equal(uint64(40), to.Lamports)
	require.Equal(owner, to.Owner)
	require.Equal([]byte{0, 0, 0, 0}, to.Data)

	// Creating the same account twice fails.
	err = ProcessInstruction(Address, toInfos(from, to), ix.Data)
	require.ErrorIs(err, program.ErrAccountAlreadyInUse)
}

func TestCreateAccountErrors(t *testing.T) {
	owner := testAddress(consts.ProgramID)

	tests := []struct {
		name     string
		lamports uint64
		space    uint64
		toSigner bool
		accounts int
		err      error
	}{
		{name: "insufficient funds", lamports: 101, space: 4, toSigner: true, accounts: 2, err: program.ErrInsufficientFunds},
		{name: "too much space", lamports: 1, space: consts.MaxAccountDataLen + 1, toSigner: true, accounts: 2, err: ErrInvalidAccountDataLen},
		{name: "unsigned new account", lamports: 1, space: 4, toSigner: false, accounts: 2, err: program.ErrMissingRequiredSignature},
		{name: "missing account", lamports: 1, space: 4, toSigner: true, accounts: 1, err: program.ErrNotEnoughAccountKeys},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			from := &program.AccountInfo{Key: testAddress(consts.ED25519ID), IsSigner: true, IsWritable: true, Lamports: 100, Owner: Address}
			to := &program.AccountInfo{Key: testAddress(consts.ED25519ID), IsSigner: tt.toSigner, IsWritable: true, Owner: Address}
			ix, err := NewCreateAccount(from.Key, to.Key, tt.lamports, tt.space, owner)
			require.NoError(err)

			accounts := toInfos(from, to)[:tt.accounts]
			err = ProcessInstruction(Address, accounts, ix.Data)
			require.ErrorIs(err, tt.err)
			require.Equal(uint64(100), from.Lamports)
			require.Zero(to.Lamports)
			require.Empty(to.Data)
		})
	}
}

func TestCreateAccountWithSeed(t *testing.T) {
	require := require.New(t)

	owner := testAddress(consts.ProgramID)
	from := &program.AccountInfo{Key: testAddress(consts.ED25519ID), IsSigner: true, IsWritable: true, Lamports: 100, Owner: Address}
	derived, err := CreateWithSeed(from.Key, "transfer", owner)
	require.NoError(err)
	to := &program.AccountInfo{Key: derived, IsWritable: true, Owner: Address}

	ix, err := NewCreateAccountWithSeed(from.Key, to.Key, from.Key, "transfer", 10, 4, owner)
	require.NoError(err)
	require.Len(ix.Accounts, 2)
	require.False(ix.Accounts[1].IsSigner)

	require.NoError(ProcessInstruction(Address, toInfos(from, to), ix.Data))
	require.Equal(owner, to.Owner)
	require.Len(to.Data, 4)
	require.Equal(uint64(10), to.Lamports)

	// Wrong seed does not derive [to].
	other := &program.AccountInfo{Key: derived, IsWritable: true, Owner: Address}
	ix, err = NewCreateAccountWithSeed(from.Key, other.Key, from.Key, "other", 10, 4, owner)
	require.NoError(err)
	err = ProcessInstruction(Address, toInfos(from, other), ix.Data)
	require.ErrorIs(err, ErrAddressWithSeedMismatch)
}

func TestCreateAccountWithSeparateBase(t *testing.T) {
	require := require.New(t)

	owner := testAddress(consts.ProgramID)
	from := &program.AccountInfo{Key: testAddress(consts.ED25519ID), IsSigner: true, IsWritable: true, Lamports: 100, Owner: Address}
	base := &program.AccountInfo{Key: testAddress(consts.ED25519ID), Owner: Address}
	derived, err := CreateWithSeed(base.Key, "transfer", owner)
	require.NoError(err)
	to := &program.AccountInfo{Key: derived, IsWritable: true, Owner: Address}

	ix, err := NewCreateAccountWithSeed(from.Key, to.Key, base.Key, "transfer", 10, 4, owner)
	require.NoError(err)
	require.Len(ix.Accounts, 3)

	err = ProcessInstruction(Address, toInfos(from, to, base), ix.Data)
	require.ErrorIs(err, program.ErrMissingRequiredSignature)

	base.IsSigner = true
	require.NoError(ProcessInstruction(Address, toInfos(from, to, base), ix.Data))
	require.Equal(owner, to.Owner)
}

func TestTransferAndAssign(t *testing.T) {
	require := require.New(t)

	from := &program.AccountInfo{Key: testAddress(consts.ED25519ID), IsSigner: true, IsWritable: true, Lamports: 100, Owner: Address}
	to := &program.AccountInfo{Key: testAddress(consts.ED25519ID), IsWritable: true, Owner: Address}

	ix, err := NewTransfer(from.Key, to.Key, 30)
	require.NoError(err)
	require.NoError(ProcessInstruction(Address, toInfos(from, to), ix.Data))
	require.Equal(uint64(70), from.Lamports)
	require.Equal(uint64(30), to.Lamports)

	ix, err = NewTransfer(from.Key, to.Key, 71)
	require.NoError(err)
	require.ErrorIs(ProcessInstruction(Address, toInfos(from, to), ix.Data), program.ErrInsufficientFunds)

	// Self transfers are no-ops.
	ix, err = NewTransfer(from.Key, from.Key, 50)
	require.NoError(err)
	require.NoError(ProcessInstruction(Address, toInfos(from, from), ix.Data))
	require.Equal(uint64(70), from.Lamports)

	from.Data = []byte{1}
	ix, err = NewTransfer(from.Key, to.Key, 1)
	require.NoError(err)
	require.ErrorIs(ProcessInstruction(Address, toInfos(from, to), ix.Data), ErrTransferFromDataAccount)

	owner := testAddress(consts.ProgramID)
	ix, err = NewAssign(to.Key, owner)
	require.NoError(err)
	require.ErrorIs(ProcessInstruction(Address, toInfos(to), ix.Data), program.ErrMissingRequiredSignature)
	to.IsSigner = true
	require.NoError(ProcessInstruction(Address, toInfos(to), ix.Data))
	require.Equal(owner, to.Owner)
}

func TestInvalidInstructionData(t *testing.T) {
	require := require.New(t)

	err := ProcessInstruction(Address, nil, []byte{0xFF})
	require.ErrorIs(err, program.ErrInvalidInstructionData)

	data, err := codec.Serialize(Instruction{Type: 42})
	require.NoError(err)
	err = ProcessInstruction(Address, nil, data)
	require.ErrorIs(err, ErrUnknownInstruction)
}
