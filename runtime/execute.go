// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/ava-labs/transfercoin/chain"
	"github.com/ava-labs/transfercoin/codec"
	"github.com/ava-labs/transfercoin/program"
	"github.com/ava-labs/transfercoin/state"
	"github.com/ava-labs/transfercoin/storage"
	"github.com/ava-labs/transfercoin/system"
)

// Execute runs every instruction of [tx] in order and commits the resulting
// account changes in a single batch. If any instruction fails nothing is
// written.
func (r *Runtime) Execute(ctx context.Context, tx *chain.Transaction) error {
	ctx, span := r.tracer.Start(
		ctx, "Runtime.Execute",
		oteltrace.WithAttributes(
			attribute.Stringer("payer", tx.Message.Payer),
			attribute.Int("instructions", len(tx.Message.Instructions)),
			attribute.Int("signatures", len(tx.Signatures)),
		),
	)
	defer span.End()

	start := time.Now()
	slot, err := r.execute(ctx, tx)
	r.metrics.executeTx.Observe(float64(time.Since(start)))

	result := &Result{
		TxID:         tx.ID(),
		Slot:         slot,
		Payer:        tx.Message.Payer,
		Instructions: len(tx.Message.Instructions),
		Err:          err,
	}
	if err != nil {
		r.metrics.txsFailed.Inc()
		r.log.Debug("transaction failed",
			zap.Stringer("txID", result.TxID),
			zap.Error(err),
		)
	} else {
		r.metrics.txsProcessed.Inc()
		r.log.Debug("transaction processed",
			zap.Stringer("txID", result.TxID),
			zap.Uint64("slot", slot),
			zap.Int("instructions", result.Instructions),
		)
	}
	if serr := r.subscriptions.Accept(ctx, result); serr != nil {
		r.log.Warn("subscription failed",
			zap.Stringer("txID", result.TxID),
			zap.Error(serr),
		)
	}
	return err
}

func (r *Runtime) execute(ctx context.Context, tx *chain.Transaction) (uint64, error) {
	slot := r.Slot()
	if l := len(tx.Message.Instructions); l > r.cfg.MaxInstructions {
		return slot, fmt.Errorf("%w: %d > %d", ErrTooManyInstructions, l, r.cfg.MaxInstructions)
	}
	if err := r.verifySignatures(ctx, tx); err != nil {
		return slot, err
	}
	if !r.isRecentBlockhash(tx.Message.RecentBlockhash) {
		return slot, fmt.Errorf("%w: %s", ErrBlockhashNotFound, tx.Message.RecentBlockhash)
	}

	txID := tx.ID()
	if !r.reserve(txID) {
		r.metrics.txsDuplicate.Inc()
		return slot, fmt.Errorf("%w: %s", ErrAlreadyProcessed, txID)
	}
	defer r.release(txID)

	keys := tx.StateKeys()
	unlock := r.locks.LockKeys(keys)
	defer unlock()

	mu := state.NewSimpleMutable(r.db)
	if _, exists, err := storage.GetTransaction(ctx, mu, txID); err != nil {
		return slot, err
	} else if exists {
		r.metrics.txsDuplicate.Inc()
		return slot, fmt.Errorf("%w: %s", ErrAlreadyProcessed, txID)
	}

	accounts := newAccountCache(mu)
	signers := tx.Signers()
	for i, ix := range tx.Message.Instructions {
		if err := r.invoke(ctx, accounts, keys, signers, ix); err != nil {
			return slot, fmt.Errorf("%w %d: %w", ErrInstructionFailed, i, err)
		}
		r.metrics.instructions.Inc()
	}

	for addr, account := range accounts.modified() {
		if err := storage.SetAccount(ctx, mu, addr, account); err != nil {
			return slot, err
		}
		r.metrics.accountsModified.Inc()
	}
	if err := storage.SetTransaction(ctx, mu, txID, slot); err != nil {
		return slot, err
	}
	return slot, mu.Commit(ctx)
}

func (r *Runtime) verifySignatures(ctx context.Context, tx *chain.Transaction) error {
	_, span := r.tracer.Start(ctx, "Runtime.VerifySignatures")
	defer span.End()

	return tx.Verify()
}

func (r *Runtime) reserve(txID ids.ID) bool {
	r.inflightL.Lock()
	defer r.inflightL.Unlock()

	if r.inflight.Contains(txID) {
		return false
	}
	r.inflight.Add(txID)
	return true
}

func (r *Runtime) release(txID ids.ID) {
	r.inflightL.Lock()
	defer r.inflightL.Unlock()

	r.inflight.Remove(txID)
}

func (r *Runtime) resolve(ctx context.Context, accounts *accountCache, programID codec.Address) (program.Entrypoint, error) {
	if programID == system.Address {
		return system.ProcessInstruction, nil
	}
	account, err := accounts.get(ctx, programID)
	if err != nil {
		return nil, err
	}
	if account.IsEmpty() {
		return nil, fmt.Errorf("%w: %s", ErrProgramNotFound, programID)
	}
	if !account.Executable || account.Owner != LoaderAddress {
		return nil, fmt.Errorf("%w: %s", ErrProgramNotExecutable, programID)
	}
	entrypoint, ok := r.builtin(string(account.Data))
	if !ok {
		return nil, fmt.Errorf("%w: %s (%s)", ErrProgramNotFound, programID, account.Data)
	}
	return entrypoint, nil
}

// invoke hands [ix] private copies of its accounts and applies the result to
// [accounts] only if every account rule holds afterwards.
func (r *Runtime) invoke(
	ctx context.Context,
	accounts *accountCache,
	keys state.Keys,
	signers []codec.Address,
	ix chain.Instruction,
) error {
	ctx, span := r.tracer.Start(
		ctx, "Runtime.Invoke",
		oteltrace.WithAttributes(
			attribute.Stringer("programID", ix.ProgramID),
			attribute.Int("accounts", len(ix.Accounts)),
		),
	)
	defer span.End()

	entrypoint, err := r.resolve(ctx, accounts, ix.ProgramID)
	if err != nil {
		return err
	}

	var (
		infos = make([]*program.AccountInfo, len(ix.Accounts))
		order = make([]codec.Address, 0, len(ix.Accounts))
		byKey = make(map[codec.Address]*program.AccountInfo, len(ix.Accounts))
		pre   = make(map[codec.Address]*storage.Account, len(ix.Accounts))
	)
	writable := func(addr codec.Address) bool {
		return keys[string(addr[:])].Has(state.Write)
	}
	for i, meta := range ix.Accounts {
		if info, ok := byKey[meta.Address]; ok {
			infos[i] = info
			continue
		}
		account, err := accounts.get(ctx, meta.Address)
		if err != nil {
			return err
		}
		info := &program.AccountInfo{
			Key:        meta.Address,
			IsSigner:   slices.Contains(signers, meta.Address),
			IsWritable: writable(meta.Address),
			Lamports:   account.Lamports,
			Owner:      account.Owner,
			Executable: account.Executable,
			Data:       slices.Clone(account.Data),
		}
		infos[i] = info
		byKey[meta.Address] = info
		pre[meta.Address] = account
		order = append(order, meta.Address)
	}

	if err := call(entrypoint, ix.ProgramID, infos, ix.Data); err != nil {
		return err
	}

	var before, after lamportSum
	for _, addr := range order {
		info := byKey[addr]
		if err := verifyAccount(ix.ProgramID, pre[addr], info, writable(addr)); err != nil {
			return fmt.Errorf("%w: %s", err, addr)
		}
		before.add(pre[addr].Lamports)
		after.add(info.Lamports)
	}
	if before != after {
		return ErrUnbalancedInstruction
	}

	for _, addr := range order {
		if !writable(addr) {
			continue
		}
		info := byKey[addr]
		accounts.set(addr, &storage.Account{
			Lamports:   info.Lamports,
			Owner:      info.Owner,
			Executable: info.Executable,
			Data:       info.Data,
		})
	}
	r.log.Debug("instruction executed",
		zap.Stringer("programID", ix.ProgramID),
		zap.Int("accounts", len(order)),
	)
	return nil
}

func call(entrypoint program.Entrypoint, programID codec.Address, accounts []*program.AccountInfo, data []byte) (err error) {
	defer func() {
		if rerr := recover(); rerr != nil {
			err = fmt.Errorf("%w: %v", ErrProgramPanicked, rerr)
		}
	}()
	return entrypoint(programID, accounts, data)
}
