// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ava-labs/transfercoin/client"
	"github.com/ava-labs/transfercoin/config"
	"github.com/ava-labs/transfercoin/crypto/ed25519"
	"github.com/ava-labs/transfercoin/history"
	"github.com/ava-labs/transfercoin/pebble"
	"github.com/ava-labs/transfercoin/runtime"
	"github.com/ava-labs/transfercoin/state"
	"github.com/ava-labs/transfercoin/storage"
	"github.com/ava-labs/transfercoin/trace"
	"github.com/ava-labs/transfercoin/transfercoin"

	avatrace "github.com/ava-labs/avalanchego/trace"
)

const payerKeyName = "payer"

var (
	ErrNoPayer          = errors.New("no payer key, run init first")
	ErrDuplicateKeyName = errors.New("duplicate key name")
	ErrKeyNotFound      = errors.New("key not found")
	ErrHistoryDisabled  = errors.New("history is disabled")
)

type app struct {
	configPath string
	dataDir    string
	logLevel   string
	verbose    bool

	cfg        *config.Config
	logFactory *logFactory
	log        logging.Logger
	tracer     avatrace.Tracer
	db         *pebble.Database
	rt         *runtime.Runtime
	history    *history.Store
	closed     bool
}

// Execute runs the root command with [args] and releases the ledger however
// the command exits.
func Execute(ctx context.Context, args []string) error {
	cmd, a := newRootCmd()
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if cerr := a.close(); cerr != nil {
		return errors.Join(err, fmt.Errorf("failed to close ledger: %w", cerr))
	}
	return err
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "transfercoin",
		Short: "Transfer coins to a counter account on a local ledger",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cobra.EnablePrefixMatching = true
	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.DisableAutoGenTag = true
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "ledger directory (overrides config)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (overrides config)")
	cmd.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "also write logs to stderr")

	cmd.AddCommand(
		newInitCmd(a),
		newTransferCmd(a),
		newReportCmd(a),
		newHistoryCmd(a),
		newKeyCmd(a),
	)
	return cmd, a
}

func (a *app) init(ctx context.Context) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if len(a.dataDir) > 0 {
		cfg.DataDir = a.dataDir
	}
	if len(a.logLevel) > 0 {
		cfg.LogLevel = a.logLevel
	}
	a.cfg = cfg

	level, err := cfg.GetLogLevel()
	if err != nil {
		return err
	}
	loggingConfig := logging.Config{}
	loggingConfig.LogLevel = level
	loggingConfig.DisplayLevel = level
	loggingConfig.Directory = cfg.GetLogDir()
	loggingConfig.LogFormat = logging.JSON
	loggingConfig.MaxSize = 8
	loggingConfig.MaxFiles = 4
	loggingConfig.MaxAge = 7
	loggingConfig.DisableWriterDisplaying = !a.verbose

	a.logFactory = newLogFactory(loggingConfig)
	a.log, err = a.logFactory.Make("transfercoin")
	if err != nil {
		a.logFactory.Close()
		return err
	}

	a.db, _, err = storage.New(cfg.GetPebbleConfig(), cfg.GetDataDir(), storage.LedgerNamespace)
	if err != nil {
		return fmt.Errorf("failed to open ledger: %w", err)
	}
	a.rt, err = runtime.New(ctx, cfg.GetRuntimeConfig(), a.log, a.db)
	if err != nil {
		return err
	}
	a.tracer, err = trace.New(cfg.GetTraceConfig())
	if err != nil {
		return err
	}
	a.rt.SetTracer(a.tracer)
	if err := a.rt.Register(transfercoin.Name, transfercoin.ProcessInstruction); err != nil {
		return err
	}
	if cfg.GetHistoryEnabled() {
		a.history, err = history.Open(cfg.GetHistoryPath())
		if err != nil {
			return err
		}
		a.rt.Subscribe(a.history)
	}

	a.log.Info("transfercoin initialized",
		zap.String("dataDir", cfg.GetDataDir()),
		zap.Stringer("log-level", level),
		zap.Stringer("programID", cfg.GetProgramID()),
	)
	return nil
}

func (a *app) close() error {
	if a.closed {
		return nil
	}
	a.closed = true

	var errs []error
	if a.rt != nil {
		errs = append(errs, a.rt.Close())
	}
	if a.tracer != nil {
		errs = append(errs, a.tracer.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	if a.logFactory != nil {
		a.logFactory.Close()
	}
	return errors.Join(errs...)
}

func (a *app) client() *client.Client {
	return client.New(a.rt, a.cfg.GetProgramID(), a.cfg.GetSeed())
}

// payer loads the payer key written by init.
func (a *app) payer(ctx context.Context) (ed25519.PrivateKey, error) {
	key, ok, err := storage.GetKey(ctx, state.NewSimpleMutable(a.db), payerKeyName)
	if err != nil {
		return ed25519.EmptyPrivateKey, err
	}
	if !ok {
		return ed25519.EmptyPrivateKey, ErrNoPayer
	}
	return key, nil
}
