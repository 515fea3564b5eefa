// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package transfercoin

import (
	"encoding/binary"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/transfercoin/codec"
	"github.com/ava-labs/transfercoin/consts"
	"github.com/ava-labs/transfercoin/program"
)

var testProgramID = codec.CreateAddress(consts.ProgramID, ids.GenerateTestID())

func newCounterAccount(counter uint32) *program.AccountInfo {
	data := make([]byte, CounterStateLen)
	binary.LittleEndian.PutUint32(data, counter)
	return &program.AccountInfo{
		Key:        codec.CreateAddress(consts.SeedID, ids.GenerateTestID()),
		IsWritable: true,
		Owner:      testProgramID,
		Data:       data,
	}
}

func counterOf(t *testing.T, a *program.AccountInfo) uint32 {
	s, err := UnpackCounterState(a.Data)
	require.NoError(t, err)
	return s.Counter
}

func TestProcessInstructionTransfers(t *testing.T) {
	require := require.New(t)
	account := newCounterAccount(0)
	require.Equal([]byte{0, 0, 0, 0}, account.Data)

	require.NoError(ProcessInstruction(testProgramID, []*program.AccountInfo{account}, []byte{0}))
	require.Equal([]byte{1, 0, 0, 0}, account.Data)

	require.NoError(ProcessInstruction(testProgramID, []*program.AccountInfo{account}, []byte{1}))
	require.Equal([]byte{2, 0, 0, 0}, account.Data)
}

func TestProcessInstructionIncrementsByOne(t *testing.T) {
	for _, n := range []uint32{0, 1, 41, 1 << 16, consts.MaxUint32 - 1} {
		require := require.New(t)
		account := newCounterAccount(n)
		require.NoError(ProcessInstruction(testProgramID, []*program.AccountInfo{account}, nil))
		require.Equal(n+1, counterOf(t, account))
		require.Len(account.Data, CounterStateLen)
	}
}

func TestProcessInstructionSequential(t *testing.T) {
	require := require.New(t)
	const (
		start = uint32(1000)
		k     = 250
	)
	account := newCounterAccount(start)
	for i := 0; i < k; i++ {
		require.NoError(ProcessInstruction(testProgramID, []*program.AccountInfo{account}, []byte{byte(i)}))
	}
	require.Equal(start+k, counterOf(t, account))
}

func TestProcessInstructionIgnoresPayload(t *testing.T) {
	require := require.New(t)
	account := newCounterAccount(5)
	payload := []byte("same payload")

	require.NoError(ProcessInstruction(testProgramID, []*program.AccountInfo{account}, payload))
	require.NoError(ProcessInstruction(testProgramID, []*program.AccountInfo{account}, payload))
	require.Equal(uint32(7), counterOf(t, account))
	require.Equal([]byte("same payload"), payload)
}

func TestProcessInstructionOverflowWraps(t *testing.T) {
	require := require.New(t)
	account := newCounterAccount(consts.MaxUint32)
	require.NoError(ProcessInstruction(testProgramID, []*program.AccountInfo{account}, nil))
	require.Equal([]byte{0, 0, 0, 0}, account.Data)
}

func TestProcessInstructionOnlyTouchesFirstAccount(t *testing.T) {
	require := require.New(t)
	target := newCounterAccount(3)
	other := newCounterAccount(10)
	require.NoError(ProcessInstruction(testProgramID, []*program.AccountInfo{target, other}, nil))
	require.Equal(uint32(4), counterOf(t, target))
	require.Equal(uint32(10), counterOf(t, other))
}

func TestProcessInstructionErrors(t *testing.T) {
	tests := []struct {
		name     string
		accounts []*program.AccountInfo
		err      error
	}{
		{
			name:     "no accounts",
			accounts: nil,
			err:      ErrMissingAccount,
		},
		{
			name:     "empty accounts",
			accounts: []*program.AccountInfo{},
			err:      ErrMissingAccount,
		},
		{
			name:     "empty data",
			accounts: []*program.AccountInfo{{Data: []byte{}}},
			err:      ErrMalformedState,
		},
		{
			name:     "short data",
			accounts: []*program.AccountInfo{{Data: []byte{1, 2, 3}}},
			err:      ErrMalformedState,
		},
		{
			name:     "long data",
			accounts: []*program.AccountInfo{{Data: []byte{1, 2, 3, 4, 5}}},
			err:      ErrMalformedState,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			var before [][]byte
			for _, a := range tt.accounts {
				before = append(before, append([]byte{}, a.Data...))
			}

			err := ProcessInstruction(testProgramID, tt.accounts, []byte{0})
			require.ErrorIs(err, tt.err)

			for i, a := range tt.accounts {
				require.Equal(before[i], a.Data)
			}
		})
	}
}
