// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"errors"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/transfercoin/codec"
	"github.com/ava-labs/transfercoin/consts"
	"github.com/ava-labs/transfercoin/state"
)

const (
	blockhashPrefix   = 0x2
	transactionPrefix = 0x3
)

var blockhashKey = string([]byte{blockhashPrefix})

// Blockhashes is the current slot and the window of recent blockhashes,
// oldest first.
type Blockhashes struct {
	Slot   uint64
	Hashes []ids.ID
}

// GetBlockhashes returns the persisted blockhash window, if any.
func GetBlockhashes(ctx context.Context, im state.Immutable) (*Blockhashes, bool, error) {
	v, err := im.Get(ctx, blockhashKey)
	if errors.Is(err, database.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	b, err := codec.Deserialize[Blockhashes](v)
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func SetBlockhashes(ctx context.Context, mu state.Mutable, b *Blockhashes) error {
	v, err := codec.Serialize(*b)
	if err != nil {
		return err
	}
	return mu.Put(ctx, blockhashKey, v)
}

func transactionKey(txID ids.ID) string {
	k := make([]byte, 1+ids.IDLen)
	k[0] = transactionPrefix
	copy(k[1:], txID[:])
	return string(k)
}

// [txID] -> [slot]
func GetTransaction(ctx context.Context, im state.Immutable, txID ids.ID) (uint64, bool, error) {
	v, err := im.Get(ctx, transactionKey(txID))
	if errors.Is(err, database.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if len(v) != consts.Uint64Len {
		return 0, false, codec.ErrTrailingBytes
	}
	return binary.BigEndian.Uint64(v), true, nil
}

// SetTransaction records that [txID] was processed in [slot].
func SetTransaction(ctx context.Context, mu state.Mutable, txID ids.ID, slot uint64) error {
	v := make([]byte, consts.Uint64Len)
	binary.BigEndian.PutUint64(v, slot)
	return mu.Put(ctx, transactionKey(txID), v)
}
