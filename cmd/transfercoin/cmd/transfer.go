// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ava-labs/transfercoin/utils"
)

func newTransferCmd(a *app) *cobra.Command {
	var times int
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer coin to the counter account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if times < 1 {
				return fmt.Errorf("--times must be positive, got %d", times)
			}
			return a.transfer(cmd.Context(), times)
		},
	}
	cmd.Flags().IntVar(&times, "times", 1, "number of transfers to send")
	return cmd
}

func (a *app) transfer(ctx context.Context, times int) error {
	utils.Outf("{{cyan}}transfer coins to an account...{{/}}\n")

	key, err := a.payer(ctx)
	if err != nil {
		return err
	}
	cli := a.client()
	// the payer keeps its own funding after paying for the counter account
	counterLamports := a.cfg.GetCounterLamports()
	balance, err := cli.EstablishPayer(ctx, key, a.cfg.GetPayerLamports()+counterLamports)
	if err != nil {
		return err
	}
	utils.Outf("{{yellow}}using account{{/}} %s {{yellow}}containing{{/}} %s\n", cli.Payer(), utils.FormatBalance(balance))

	if err := cli.CheckProgram(ctx); err != nil {
		return err
	}
	utils.Outf("{{yellow}}using program{{/}} %s\n", a.cfg.GetProgramID())

	created, err := cli.EnsureCounterAccount(ctx, counterLamports)
	if err != nil {
		return err
	}
	if created {
		utils.Outf("{{green}}created account{{/}} %s {{green}}to transfer coin to{{/}}\n", cli.Counter())
	}

	for i := 0; i < times; i++ {
		txID, err := cli.TransferCoin(ctx)
		if err != nil {
			return err
		}
		a.log.Debug("transfer sent",
			zap.Stringer("txID", txID),
			zap.Stringer("counter", cli.Counter()),
		)
		utils.Outf("{{green}}transfer coin to{{/}} %s {{light-gray}}(txID=%s){{/}}\n", cli.Counter(), txID)
	}

	n, err := cli.ReportTransfers(ctx)
	if err != nil {
		return err
	}
	utils.Outf("%s {{yellow}}has been transferred{{/}} %d {{yellow}}time(s){{/}}\n", cli.Counter(), n)
	utils.Outf("{{green}}success{{/}}\n")
	return nil
}
