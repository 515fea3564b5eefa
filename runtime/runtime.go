// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package runtime executes signed transactions against the account ledger.
// It owns every rule a program may not break: signatures, recent
// blockhashes, replay protection, account ownership and balance
// conservation.
package runtime

import (
	"context"
	"encoding/binary"
	"fmt"
	"slices"
	"sync"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/set"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/ava-labs/transfercoin/codec"
	"github.com/ava-labs/transfercoin/consts"
	"github.com/ava-labs/transfercoin/event"
	"github.com/ava-labs/transfercoin/lockmap"
	"github.com/ava-labs/transfercoin/program"
	"github.com/ava-labs/transfercoin/state"
	"github.com/ava-labs/transfercoin/storage"
	"github.com/ava-labs/transfercoin/system"
	"github.com/ava-labs/transfercoin/utils"

	htrace "github.com/ava-labs/transfercoin/trace"
)

// LoaderAddress owns every deployed program account.
var LoaderAddress = codec.CreateAddress(consts.LoaderID, ids.Empty)

var genesisBlockhash = utils.ToID([]byte("genesis"))

// Result describes the outcome of a transaction handed to
// [Runtime.Execute].
type Result struct {
	TxID         ids.ID
	Slot         uint64
	Payer        codec.Address
	Instructions int
	Err          error
}

func (r *Result) Success() bool {
	return r.Err == nil
}

type Runtime struct {
	cfg     Config
	log     logging.Logger
	db      state.Database
	metrics *metrics
	reg     *prometheus.Registry
	tracer  trace.Tracer

	builtinsL sync.RWMutex
	builtins  map[string]program.Entrypoint

	locks *lockmap.Lockmap

	blockL      sync.RWMutex
	slot        atomic.Uint64
	blockhashes []ids.ID

	inflightL sync.Mutex
	inflight  set.Set[ids.ID]

	subscriptions event.Subscriptions[*Result]
}

// New returns a runtime over [db]. The blockhash window is restored from
// [db] when present; otherwise the ledger starts at slot 0.
func New(ctx context.Context, cfg Config, log logging.Logger, db state.Database) (*Runtime, error) {
	reg, m, err := newMetrics()
	if err != nil {
		return nil, err
	}
	r := &Runtime{
		cfg:      cfg,
		log:      log,
		db:       db,
		metrics:  m,
		reg:      reg,
		tracer:   htrace.Noop(namespace),
		builtins: map[string]program.Entrypoint{system.Name: system.ProcessInstruction},
		locks:    lockmap.New(cfg.LockMapSize),
		inflight: set.Set[ids.ID]{},
	}
	view := state.NewSimpleMutable(db)
	b, exists, err := storage.GetBlockhashes(ctx, view)
	if err != nil {
		return nil, err
	}
	if exists && len(b.Hashes) > 0 {
		r.slot.Store(b.Slot)
		r.blockhashes = b.Hashes
	} else {
		r.blockhashes = []ids.ID{genesisBlockhash}
	}
	r.metrics.slot.Set(float64(r.slot.Load()))
	log.Info("runtime initialized",
		zap.Uint64("slot", r.slot.Load()),
		zap.Stringer("blockhash", r.LatestBlockhash()),
	)
	return r, nil
}

// SetTracer replaces the tracer spans are started on. It must be called
// before any transaction is executed.
func (r *Runtime) SetTracer(t trace.Tracer) {
	r.tracer = t
}

func (r *Runtime) Tracer() trace.Tracer {
	return r.tracer
}

// Registry exposes the runtime metrics.
func (r *Runtime) Registry() *prometheus.Registry {
	return r.reg
}

// Register makes [entrypoint] available to program accounts deployed under
// [name].
func (r *Runtime) Register(name string, entrypoint program.Entrypoint) error {
	r.builtinsL.Lock()
	defer r.builtinsL.Unlock()

	if _, ok := r.builtins[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateBuiltin, name)
	}
	r.builtins[name] = entrypoint
	return nil
}

func (r *Runtime) builtin(name string) (program.Entrypoint, bool) {
	r.builtinsL.RLock()
	defer r.builtinsL.RUnlock()

	e, ok := r.builtins[name]
	return e, ok
}

// Subscribe registers [sub] to receive the [Result] of every executed
// transaction.
func (r *Runtime) Subscribe(sub event.Subscription[*Result]) {
	r.subscriptions.Add(sub)
}

// DeployProgram writes an executable account at [programID] that runs the
// builtin registered as [name].
func (r *Runtime) DeployProgram(ctx context.Context, programID codec.Address, name string) error {
	if _, ok := r.builtin(name); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownBuiltin, name)
	}
	if programID == system.Address {
		return fmt.Errorf("%w: %s", program.ErrInvalidArgument, programID)
	}
	keys := state.Keys{}
	keys.Add(string(programID[:]), state.Write)
	release := r.locks.LockKeys(keys)
	defer release()

	mu := state.NewSimpleMutable(r.db)
	if err := storage.SetAccount(ctx, mu, programID, &storage.Account{
		Owner:      LoaderAddress,
		Executable: true,
		Data:       []byte(name),
	}); err != nil {
		return err
	}
	if err := mu.Commit(ctx); err != nil {
		return err
	}
	r.log.Info("deployed program",
		zap.Stringer("programID", programID),
		zap.String("name", name),
	)
	return nil
}

// Airdrop credits [lamports] to [addr], creating a system owned account if
// none exists.
func (r *Runtime) Airdrop(ctx context.Context, addr codec.Address, lamports uint64) error {
	keys := state.Keys{}
	keys.Add(string(addr[:]), state.Write)
	release := r.locks.LockKeys(keys)
	defer release()

	mu := state.NewSimpleMutable(r.db)
	account, exists, err := storage.GetAccount(ctx, mu, addr)
	if err != nil {
		return err
	}
	if !exists {
		account = &storage.Account{Owner: system.Address}
	}
	if account.Lamports+lamports < account.Lamports {
		return ErrLamportsOverflow
	}
	account.Lamports += lamports
	if err := storage.SetAccount(ctx, mu, addr, account); err != nil {
		return err
	}
	if err := mu.Commit(ctx); err != nil {
		return err
	}
	r.log.Debug("airdrop",
		zap.Stringer("address", addr),
		zap.Uint64("lamports", lamports),
	)
	return nil
}

// GetAccount returns the committed account at [addr].
func (r *Runtime) GetAccount(ctx context.Context, addr codec.Address) (*storage.Account, bool, error) {
	return storage.GetAccount(ctx, state.NewSimpleMutable(r.db), addr)
}

func (r *Runtime) Slot() uint64 {
	return r.slot.Load()
}

// LatestBlockhash returns the blockhash new transactions should be signed
// with.
func (r *Runtime) LatestBlockhash() ids.ID {
	r.blockL.RLock()
	defer r.blockL.RUnlock()

	return r.blockhashes[len(r.blockhashes)-1]
}

// AdvanceSlot moves to the next slot and returns its blockhash. The oldest
// blockhash leaves the window once it holds [Config.MaxRecentBlockhashes].
func (r *Runtime) AdvanceSlot(ctx context.Context) (ids.ID, error) {
	r.blockL.Lock()
	defer r.blockL.Unlock()

	slot := r.slot.Load() + 1
	prev := r.blockhashes[len(r.blockhashes)-1]
	b := make([]byte, ids.IDLen+consts.Uint64Len)
	copy(b, prev[:])
	binary.BigEndian.PutUint64(b[ids.IDLen:], slot)
	next := utils.ToID(b)

	hashes := append(slices.Clone(r.blockhashes), next)
	if extra := len(hashes) - r.cfg.MaxRecentBlockhashes; extra > 0 {
		hashes = hashes[extra:]
	}
	mu := state.NewSimpleMutable(r.db)
	if err := storage.SetBlockhashes(ctx, mu, &storage.Blockhashes{Slot: slot, Hashes: hashes}); err != nil {
		return ids.Empty, err
	}
	if err := mu.Commit(ctx); err != nil {
		return ids.Empty, err
	}
	r.blockhashes = hashes
	r.slot.Store(slot)
	r.metrics.slot.Set(float64(slot))
	return next, nil
}

func (r *Runtime) isRecentBlockhash(blockhash ids.ID) bool {
	r.blockL.RLock()
	defer r.blockL.RUnlock()

	return slices.Contains(r.blockhashes, blockhash)
}

// Close closes all subscriptions. The database is owned by the caller.
func (r *Runtime) Close() error {
	return r.subscriptions.Close()
}
