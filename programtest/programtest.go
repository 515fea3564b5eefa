// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package programtest runs a program against an in-memory ledger so its
// behavior can be exercised end to end without a data directory.
package programtest

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/transfercoin/auth"
	"github.com/ava-labs/transfercoin/chain"
	"github.com/ava-labs/transfercoin/codec"
	"github.com/ava-labs/transfercoin/consts"
	"github.com/ava-labs/transfercoin/crypto/ed25519"
	"github.com/ava-labs/transfercoin/program"
	"github.com/ava-labs/transfercoin/runtime"
	"github.com/ava-labs/transfercoin/state"
	"github.com/ava-labs/transfercoin/storage"
)

// PayerLamports is the balance the payer returned by [ProgramTest.Start]
// begins with.
const PayerLamports = 1_000 * consts.LamportsPerCoin

type genesisAccount struct {
	addr    codec.Address
	account *storage.Account
}

type ProgramTest struct {
	name       string
	programID  codec.Address
	entrypoint program.Entrypoint

	cfg      runtime.Config
	log      logging.Logger
	accounts []genesisAccount
}

// New returns a harness that deploys [entrypoint] at [programID] under
// [name] when started.
func New(name string, programID codec.Address, entrypoint program.Entrypoint) *ProgramTest {
	return &ProgramTest{
		name:       name,
		programID:  programID,
		entrypoint: entrypoint,
		cfg:        runtime.NewDefaultConfig(),
		log:        logging.NoLog{},
	}
}

// SetLogger replaces the default no-op logger.
func (p *ProgramTest) SetLogger(log logging.Logger) {
	p.log = log
}

// AddAccount seeds the ledger with [account] at [addr] before start.
func (p *ProgramTest) AddAccount(addr codec.Address, account *storage.Account) {
	p.accounts = append(p.accounts, genesisAccount{addr: addr, account: account.Clone()})
}

// Start creates the ledger, deploys the program, funds a fresh payer and
// returns a client together with the payer and a recent blockhash.
func (p *ProgramTest) Start(ctx context.Context) (*BanksClient, ed25519.PrivateKey, ids.ID, error) {
	db := memdb.New()
	mu := state.NewSimpleMutable(db)
	for _, a := range p.accounts {
		if err := storage.SetAccount(ctx, mu, a.addr, a.account); err != nil {
			return nil, ed25519.EmptyPrivateKey, ids.Empty, err
		}
	}
	if err := mu.Commit(ctx); err != nil {
		return nil, ed25519.EmptyPrivateKey, ids.Empty, err
	}

	rt, err := runtime.New(ctx, p.cfg, p.log, db)
	if err != nil {
		return nil, ed25519.EmptyPrivateKey, ids.Empty, err
	}
	if err := rt.Register(p.name, p.entrypoint); err != nil {
		return nil, ed25519.EmptyPrivateKey, ids.Empty, err
	}
	if err := rt.DeployProgram(ctx, p.programID, p.name); err != nil {
		return nil, ed25519.EmptyPrivateKey, ids.Empty, fmt.Errorf("%w: unable to deploy %s", err, p.name)
	}

	payer, err := ed25519.GeneratePrivateKey()
	if err != nil {
		return nil, ed25519.EmptyPrivateKey, ids.Empty, err
	}
	if err := rt.Airdrop(ctx, auth.NewED25519Address(payer.PublicKey()), PayerLamports); err != nil {
		return nil, ed25519.EmptyPrivateKey, ids.Empty, err
	}
	return &BanksClient{rt: rt}, payer, rt.LatestBlockhash(), nil
}

// BanksClient submits transactions to and reads accounts from a started
// [ProgramTest].
type BanksClient struct {
	rt *runtime.Runtime
}

func (b *BanksClient) Runtime() *runtime.Runtime {
	return b.rt
}

func (b *BanksClient) GetAccount(ctx context.Context, addr codec.Address) (*storage.Account, bool, error) {
	return b.rt.GetAccount(ctx, addr)
}

func (b *BanksClient) GetLatestBlockhash() ids.ID {
	return b.rt.LatestBlockhash()
}

func (b *BanksClient) ProcessTransaction(ctx context.Context, tx *chain.Transaction) error {
	return b.rt.Execute(ctx, tx)
}

// ProcessTransactions executes [txs] concurrently and returns the first
// error. Transactions writing the same account are serialized by the
// runtime, in no particular order.
func (b *BanksClient) ProcessTransactions(ctx context.Context, txs ...*chain.Transaction) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, tx := range txs {
		tx := tx
		g.Go(func() error {
			return b.rt.Execute(gctx, tx)
		})
	}
	return g.Wait()
}
