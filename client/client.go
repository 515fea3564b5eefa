// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/transfercoin/auth"
	"github.com/ava-labs/transfercoin/chain"
	"github.com/ava-labs/transfercoin/codec"
	"github.com/ava-labs/transfercoin/crypto/ed25519"
	"github.com/ava-labs/transfercoin/runtime"
	"github.com/ava-labs/transfercoin/system"
	"github.com/ava-labs/transfercoin/transfercoin"
)

var (
	ErrProgramNotDeployed   = errors.New("program needs to be deployed")
	ErrProgramNotExecutable = errors.New("program is not executable")
	ErrCounterNotFound      = errors.New("cannot find the transferred account")
	ErrPayerNotEstablished  = errors.New("payer not established")
)

// Client drives the transfercoin program: it funds a payer, creates the
// seeded counter account and sends transfers to it.
type Client struct {
	rt        *runtime.Runtime
	programID codec.Address
	seed      string

	payer     ed25519.PrivateKey
	payerAddr codec.Address
	counter   codec.Address
}

func New(rt *runtime.Runtime, programID codec.Address, seed string) *Client {
	return &Client{rt: rt, programID: programID, seed: seed}
}

func (cli *Client) Payer() codec.Address {
	return cli.payerAddr
}

// Counter is the derived account transfers are sent to. It is only known
// after [Client.EstablishPayer].
func (cli *Client) Counter() codec.Address {
	return cli.counter
}

// EstablishPayer makes [key] the fee payer and airdrops the shortfall if its
// balance is below [minLamports]. It returns the resulting balance.
func (cli *Client) EstablishPayer(ctx context.Context, key ed25519.PrivateKey, minLamports uint64) (uint64, error) {
	addr := auth.NewED25519Address(key.PublicKey())
	counter, err := system.CreateWithSeed(addr, cli.seed, cli.programID)
	if err != nil {
		return 0, err
	}
	cli.payer = key
	cli.payerAddr = addr
	cli.counter = counter

	balance, err := cli.balance(ctx, addr)
	if err != nil {
		return 0, err
	}
	if balance < minLamports {
		if err := cli.rt.Airdrop(ctx, addr, minLamports-balance); err != nil {
			return 0, err
		}
		balance = minLamports
	}
	return balance, nil
}

func (cli *Client) balance(ctx context.Context, addr codec.Address) (uint64, error) {
	account, exists, err := cli.rt.GetAccount(ctx, addr)
	if err != nil || !exists {
		return 0, err
	}
	return account.Lamports, nil
}

// CheckProgram verifies the program is deployed and executable.
func (cli *Client) CheckProgram(ctx context.Context) error {
	account, exists, err := cli.rt.GetAccount(ctx, cli.programID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrProgramNotDeployed, cli.programID)
	}
	if !account.Executable {
		return fmt.Errorf("%w: %s", ErrProgramNotExecutable, cli.programID)
	}
	return nil
}

// EnsureCounterAccount creates the counter account with [lamports] unless
// it already exists. It reports whether the account was created.
func (cli *Client) EnsureCounterAccount(ctx context.Context, lamports uint64) (bool, error) {
	if cli.payerAddr == codec.EmptyAddress {
		return false, ErrPayerNotEstablished
	}
	_, exists, err := cli.rt.GetAccount(ctx, cli.counter)
	if err != nil || exists {
		return false, err
	}
	ix, err := system.NewCreateAccountWithSeed(
		cli.payerAddr,
		cli.counter,
		cli.payerAddr,
		cli.seed,
		lamports,
		transfercoin.CounterStateLen,
		cli.programID,
	)
	if err != nil {
		return false, err
	}
	if _, err := cli.sendAndConfirm(ctx, ix); err != nil {
		return false, err
	}
	return true, nil
}

// TransferCoin sends one transfer to the counter account.
func (cli *Client) TransferCoin(ctx context.Context) (ids.ID, error) {
	if cli.payerAddr == codec.EmptyAddress {
		return ids.Empty, ErrPayerNotEstablished
	}
	return cli.sendAndConfirm(ctx, chain.NewInstruction(
		cli.programID,
		nil,
		chain.NewAccountMeta(cli.counter, false),
	))
}

// ReportTransfers returns how many transfers the counter account received.
func (cli *Client) ReportTransfers(ctx context.Context) (uint32, error) {
	account, exists, err := cli.rt.GetAccount(ctx, cli.counter)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, fmt.Errorf("%w: %s", ErrCounterNotFound, cli.counter)
	}
	s, err := transfercoin.UnpackCounterState(account.Data)
	if err != nil {
		return 0, err
	}
	return s.Counter, nil
}

// sendAndConfirm executes a transaction and then advances the slot so the
// next transaction is signed with a fresh blockhash.
func (cli *Client) sendAndConfirm(ctx context.Context, ixs ...chain.Instruction) (ids.ID, error) {
	tx := chain.NewTx(cli.payerAddr, ixs...)
	if err := tx.Sign(cli.rt.LatestBlockhash(), cli.payer); err != nil {
		return ids.Empty, err
	}
	if err := cli.rt.Execute(ctx, tx); err != nil {
		return ids.Empty, err
	}
	if _, err := cli.rt.AdvanceSlot(ctx); err != nil {
		return ids.Empty, err
	}
	return tx.ID(), nil
}
