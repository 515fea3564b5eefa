// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/transfercoin/consts"
	"github.com/ava-labs/transfercoin/pebble"
	"github.com/ava-labs/transfercoin/runtime"
)

func TestDefaults(t *testing.T) {
	require := require.New(t)

	c, err := Load("")
	require.NoError(err)

	level, err := c.GetLogLevel()
	require.NoError(err)
	require.Equal(logging.Info, level)
	require.Equal(DefaultSeed, c.GetSeed())
	require.Equal(uint64(consts.LamportsPerCoin), c.GetPayerLamports())
	require.Equal(runtime.NewDefaultConfig(), c.GetRuntimeConfig())
	require.Equal(pebble.NewDefaultConfig(), c.GetPebbleConfig())
	require.Equal(consts.ProgramID, c.GetProgramID().TypeID())
	require.Equal(c.GetProgramID(), (&Config{}).GetProgramID())
	require.True(c.GetHistoryEnabled())
	require.Equal(filepath.Join(c.GetDataDir(), "logs"), c.GetLogDir())
	require.False(c.GetTraceConfig().Enabled)
	require.Equal(AppName, c.GetTraceConfig().AppName)
}

func TestLoad(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(os.WriteFile(path, []byte(`
data_dir: /tmp/ledger
log_level: debug
max_recent_blockhashes: 10
disable_pebble_sync: true
program_seed: other
seed: counter
payer_lamports: 42
disable_history: true
trace:
  enabled: true
  trace_sample_rate: 0.5
`), 0o600))

	c, err := Load(path)
	require.NoError(err)
	require.Equal("/tmp/ledger", c.GetDataDir())
	require.Equal(filepath.Join("/tmp/ledger", "history.db"), c.GetHistoryPath())

	level, err := c.GetLogLevel()
	require.NoError(err)
	require.Equal(logging.Debug, level)
	require.Equal(10, c.GetRuntimeConfig().MaxRecentBlockhashes)
	require.False(c.GetPebbleConfig().Sync)
	require.NotEqual((&Config{}).GetProgramID(), c.GetProgramID())
	require.Equal("counter", c.GetSeed())
	require.Equal(uint64(42), c.GetPayerLamports())
	require.False(c.GetHistoryEnabled())
	require.True(c.GetTraceConfig().Enabled)
	require.InDelta(0.5, c.GetTraceConfig().TraceSampleRate, 0)
}

func TestLoadErrors(t *testing.T) {
	require := require.New(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(os.WriteFile(path, []byte("unknown_field: 1\n"), 0o600))
	_, err = Load(path)
	require.Error(err)

	c := &Config{LogLevel: "loud"}
	_, err = c.GetLogLevel()
	require.Error(err)
}
