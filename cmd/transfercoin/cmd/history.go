// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ava-labs/transfercoin/history"
	"github.com/ava-labs/transfercoin/utils"
)

func newHistoryCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently executed transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.history == nil {
				return ErrHistoryDisabled
			}
			records, err := a.history.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			for _, r := range records {
				if r.Status == history.StatusSuccess {
					utils.Outf("{{green}}%s{{/}} slot=%d txID=%s payer=%s instructions=%d\n",
						r.Status, r.Slot, r.TxID, r.Payer, r.Instructions)
					continue
				}
				utils.Outf("{{red}}%s{{/}} slot=%d txID=%s payer=%s instructions=%d {{red}}%s{{/}}\n",
					r.Status, r.Slot, r.TxID, r.Payer, r.Instructions, r.Error)
			}
			utils.Outf("{{yellow}}%d transaction(s){{/}}\n", len(records))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of transactions to list (0 for all)")
	return cmd
}
