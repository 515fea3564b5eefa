// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// "transfercoin" sends transfers to a counter account on a local ledger.
package main

import (
	"context"
	"os"

	"github.com/ava-labs/transfercoin/cmd/transfercoin/cmd"
	"github.com/ava-labs/transfercoin/utils"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := cmd.Execute(ctx, os.Args[1:]); err != nil {
		utils.Outf("{{red}}error: {{/}}%+v\n", err)
		cancel()
		os.Exit(1)
	}
}
