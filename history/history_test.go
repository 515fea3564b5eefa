// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/transfercoin/auth"
	"github.com/ava-labs/transfercoin/chain"
	"github.com/ava-labs/transfercoin/codec"
	"github.com/ava-labs/transfercoin/consts"
	"github.com/ava-labs/transfercoin/crypto/ed25519"
	"github.com/ava-labs/transfercoin/runtime"
	"github.com/ava-labs/transfercoin/system"
)

var errTest = errors.New("test")

func TestStore(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	s, err := Open(filepath.Join(t.TempDir(), "history", "history.db"))
	require.NoError(err)
	defer func() {
		require.NoError(s.Close())
	}()

	payer := codec.CreateAddress(consts.ED25519ID, ids.GenerateTestID())
	other := codec.CreateAddress(consts.ED25519ID, ids.GenerateTestID())
	ok := &runtime.Result{TxID: ids.GenerateTestID(), Slot: 1, Payer: payer, Instructions: 1}
	failed := &runtime.Result{TxID: ids.GenerateTestID(), Slot: 2, Payer: payer, Instructions: 2, Err: errTest}
	require.NoError(s.Accept(ctx, ok))
	require.NoError(s.Accept(ctx, failed))
	require.NoError(s.Accept(ctx, &runtime.Result{TxID: ids.GenerateTestID(), Slot: 3, Payer: other}))

	records, err := s.List(ctx, 0)
	require.NoError(err)
	require.Len(records, 3)
	require.Equal(uint64(3), records[0].Slot)

	records, err = s.ListByPayer(ctx, payer, 1)
	require.NoError(err)
	require.Len(records, 1)
	require.Equal(failed.TxID.String(), records[0].TxID)
	require.Equal(StatusFailed, records[0].Status)
	require.Equal(errTest.Error(), records[0].Error)
	require.Equal(2, records[0].Instructions)

	n, err := s.Count(ctx, StatusSuccess)
	require.NoError(err)
	require.Equal(int64(2), n)
}

func TestStoreSubscribesToRuntime(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(err)

	rt, err := runtime.New(ctx, runtime.NewDefaultConfig(), logging.NoLog{}, memdb.New())
	require.NoError(err)
	rt.Subscribe(s)

	key, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	payer := auth.NewED25519Address(key.PublicKey())
	require.NoError(rt.Airdrop(ctx, payer, 10))

	ix, err := system.NewTransfer(payer, codec.CreateAddress(consts.ED25519ID, ids.GenerateTestID()), 3)
	require.NoError(err)
	tx := chain.NewTx(payer, ix)
	require.NoError(tx.Sign(rt.LatestBlockhash(), key))
	require.NoError(rt.Execute(ctx, tx))
	require.ErrorIs(rt.Execute(ctx, tx), runtime.ErrAlreadyProcessed)

	records, err := s.List(ctx, 0)
	require.NoError(err)
	require.Len(records, 2)
	require.Equal(StatusFailed, records[0].Status)
	require.Equal(StatusSuccess, records[1].Status)
	require.Equal(tx.ID().String(), records[1].TxID)
	require.Equal(payer.String(), records[1].Payer)

	// Closing the runtime closes its subscriptions.
	require.NoError(rt.Close())
}
