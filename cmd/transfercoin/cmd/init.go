// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ava-labs/transfercoin/auth"
	"github.com/ava-labs/transfercoin/crypto/ed25519"
	"github.com/ava-labs/transfercoin/state"
	"github.com/ava-labs/transfercoin/storage"
	"github.com/ava-labs/transfercoin/transfercoin"
	"github.com/ava-labs/transfercoin/utils"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Deploy the program and create a funded payer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.initLedger(cmd.Context())
		},
	}
}

func (a *app) initLedger(ctx context.Context) error {
	programID := a.cfg.GetProgramID()
	if _, exists, err := a.rt.GetAccount(ctx, programID); err != nil {
		return err
	} else if !exists {
		if err := a.rt.DeployProgram(ctx, programID, transfercoin.Name); err != nil {
			return err
		}
		utils.Outf("{{green}}deployed program:{{/}} %s\n", programID)
	} else {
		utils.Outf("{{yellow}}program already deployed:{{/}} %s\n", programID)
	}

	key, err := a.payer(ctx)
	switch {
	case errors.Is(err, ErrNoPayer):
		if key, err = createKey(ctx, a.db, payerKeyName); err != nil {
			return err
		}
		utils.Outf("{{green}}created payer:{{/}} %s\n", auth.NewED25519Address(key.PublicKey()))
	case err != nil:
		return err
	}

	cli := a.client()
	balance, err := cli.EstablishPayer(ctx, key, a.cfg.GetPayerLamports())
	if err != nil {
		return err
	}
	a.log.Info("ledger initialized",
		zap.Stringer("payer", cli.Payer()),
		zap.Uint64("balance", balance),
	)
	utils.Outf(
		"{{yellow}}using account{{/}} %s {{yellow}}containing{{/}} %s {{yellow}}coins to pay for fees{{/}}\n",
		cli.Payer(),
		utils.FormatBalance(balance),
	)
	return nil
}

func createKey(ctx context.Context, db state.Database, name string) (ed25519.PrivateKey, error) {
	mu := state.NewSimpleMutable(db)
	if _, ok, err := storage.GetKey(ctx, mu, name); err != nil {
		return ed25519.EmptyPrivateKey, err
	} else if ok {
		return ed25519.EmptyPrivateKey, ErrDuplicateKeyName
	}
	key, err := ed25519.GeneratePrivateKey()
	if err != nil {
		return ed25519.EmptyPrivateKey, err
	}
	if err := storage.SetKey(ctx, mu, key, name); err != nil {
		return ed25519.EmptyPrivateKey, err
	}
	return key, mu.Commit(ctx)
}
