// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ava-labs/transfercoin/auth"
	"github.com/ava-labs/transfercoin/crypto/ed25519"
	"github.com/ava-labs/transfercoin/state"
	"github.com/ava-labs/transfercoin/storage"
	"github.com/ava-labs/transfercoin/utils"
)

func newKeyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage named private keys stored in the ledger",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "create [name]",
			Short: "Create a new named private key",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				key, err := createKey(cmd.Context(), a.db, args[0])
				if err != nil {
					return err
				}
				utils.Outf("{{green}}created key{{/}} %s: %s\n", args[0], auth.NewED25519Address(key.PublicKey()))
				return nil
			},
		},
		&cobra.Command{
			Use:   "address [name]",
			Short: "Print the address of a named key",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				key, ok, err := storage.GetKey(cmd.Context(), state.NewSimpleMutable(a.db), args[0])
				if err != nil {
					return err
				}
				if !ok {
					return ErrKeyNotFound
				}
				utils.Outf("%s\n", auth.NewED25519Address(key.PublicKey()))
				return nil
			},
		},
		&cobra.Command{
			Use:   "export [name] [file]",
			Short: "Write a named key to a file",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				key, ok, err := storage.GetKey(cmd.Context(), state.NewSimpleMutable(a.db), args[0])
				if err != nil {
					return err
				}
				if !ok {
					return ErrKeyNotFound
				}
				if err := utils.SaveBytes(args[1], key[:]); err != nil {
					return err
				}
				utils.Outf("{{green}}exported{{/}} %s {{green}}to{{/}} %s\n", args[0], args[1])
				return nil
			},
		},
		&cobra.Command{
			Use:   "import [name] [file]",
			Short: "Store the key or seed in a file under a name",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				b, err := utils.LoadBytes(args[1], -1)
				if err != nil {
					return err
				}
				key, err := ed25519.PrivateKeyFromBytes(b)
				if err != nil {
					return err
				}
				mu := state.NewSimpleMutable(a.db)
				if _, ok, err := storage.GetKey(ctx, mu, args[0]); err != nil {
					return err
				} else if ok {
					return ErrDuplicateKeyName
				}
				if err := storage.SetKey(ctx, mu, key, args[0]); err != nil {
					return err
				}
				if err := mu.Commit(ctx); err != nil {
					return err
				}
				utils.Outf("{{green}}imported{{/}} %s: %s\n", args[0], auth.NewED25519Address(key.PublicKey()))
				return nil
			},
		},
	)
	return cmd
}
