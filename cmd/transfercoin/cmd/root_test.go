// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/transfercoin/client"
	"github.com/ava-labs/transfercoin/config"
	"github.com/ava-labs/transfercoin/history"
)

func run(t *testing.T, dataDir string, args ...string) error {
	return Execute(context.Background(), append([]string{"--data-dir", dataDir}, args...))
}

func TestTransferFlow(t *testing.T) {
	require := require.New(t)
	dataDir := t.TempDir()

	require.ErrorIs(run(t, dataDir, "transfer"), ErrNoPayer)
	require.NoError(run(t, dataDir, "init"))
	// init is idempotent
	require.NoError(run(t, dataDir, "init"))

	require.NoError(run(t, dataDir, "transfer", "--times", "2"))
	require.NoError(run(t, dataDir, "transfer"))
	require.NoError(run(t, dataDir, "report"))
	require.NoError(run(t, dataDir, "history", "--limit", "0"))
	require.Error(run(t, dataDir, "transfer", "--times", "0"))

	// Reopen the ledger directly and check what the commands left behind.
	a := &app{dataDir: dataDir}
	require.NoError(a.init(context.Background()))
	defer func() {
		require.NoError(a.close())
	}()
	key, err := a.payer(context.Background())
	require.NoError(err)
	cli := a.client()
	balance, err := cli.EstablishPayer(context.Background(), key, 0)
	require.NoError(err)
	// the counter account is funded on top of the payer's own balance
	require.GreaterOrEqual(balance, a.cfg.GetPayerLamports())
	counter, exists, err := a.rt.GetAccount(context.Background(), cli.Counter())
	require.NoError(err)
	require.True(exists)
	require.Equal(a.cfg.GetCounterLamports(), counter.Lamports)
	n, err := cli.ReportTransfers(context.Background())
	require.NoError(err)
	require.Equal(uint32(3), n)

	records, err := a.history.List(context.Background(), 0)
	require.NoError(err)
	// one create account transaction and three transfers
	require.Len(records, 4)
	for _, r := range records {
		require.Equal(history.StatusSuccess, r.Status)
	}
	require.Equal(filepath.Join(dataDir, "history.db"), a.cfg.GetHistoryPath())
	require.Equal(config.DefaultSeed, a.cfg.GetSeed())
}

func TestKeyCommands(t *testing.T) {
	require := require.New(t)
	dataDir := t.TempDir()
	file := filepath.Join(t.TempDir(), "alice.pk")

	require.NoError(run(t, dataDir, "key", "create", "alice"))
	require.ErrorIs(run(t, dataDir, "key", "create", "alice"), ErrDuplicateKeyName)
	require.NoError(run(t, dataDir, "key", "address", "alice"))
	require.ErrorIs(run(t, dataDir, "key", "address", "bob"), ErrKeyNotFound)
	require.NoError(run(t, dataDir, "key", "export", "alice", file))
	require.NoError(run(t, dataDir, "key", "import", "bob", file))
	require.ErrorIs(run(t, dataDir, "key", "import", "bob", file), ErrDuplicateKeyName)
}

func TestReportWithoutCounter(t *testing.T) {
	require := require.New(t)
	dataDir := t.TempDir()

	require.NoError(run(t, dataDir, "init"))
	require.ErrorIs(run(t, dataDir, "report"), client.ErrCounterNotFound)
}

func TestExecuteReleasesLedger(t *testing.T) {
	require := require.New(t)
	dataDir := t.TempDir()

	// Failed and successful commands both leave the ledger closed so the
	// next invocation can open it.
	for i := 0; i < 3; i++ {
		require.ErrorIs(run(t, dataDir, "transfer"), ErrNoPayer)
	}
	require.NoError(run(t, dataDir, "init"))

	a := &app{dataDir: dataDir}
	require.NoError(a.init(context.Background()))
	require.NoError(a.close())
	require.True(a.closed)
	require.NoError(a.close())
}
