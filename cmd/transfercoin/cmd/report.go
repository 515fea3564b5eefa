// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ava-labs/transfercoin/utils"
)

func newReportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Report how many times the counter account has been transferred to",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			key, err := a.payer(ctx)
			if err != nil {
				return err
			}
			cli := a.client()
			balance, err := cli.EstablishPayer(ctx, key, 0)
			if err != nil {
				return err
			}
			n, err := cli.ReportTransfers(ctx)
			if err != nil {
				return err
			}
			utils.Outf("{{yellow}}slot:{{/}} %d {{yellow}}blockhash:{{/}} %s\n", a.rt.Slot(), a.rt.LatestBlockhash())
			utils.Outf("{{yellow}}payer:{{/}} %s {{yellow}}balance:{{/}} %s\n", cli.Payer(), utils.FormatBalance(balance))
			utils.Outf("%s {{yellow}}has been transferred{{/}} %d {{yellow}}time(s){{/}}\n", cli.Counter(), n)
			return nil
		},
	}
}
