// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"errors"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/transfercoin/crypto/ed25519"
	"github.com/ava-labs/transfercoin/state"
)

func namedKey(name string) string {
	k := make([]byte, 1+len(name))
	k[0] = keyPrefix
	copy(k[1:], name)
	return string(k)
}

// GetKey returns the private key stored under [name].
func GetKey(ctx context.Context, db state.Immutable, name string) (ed25519.PrivateKey, bool, error) {
	v, err := db.Get(ctx, namedKey(name))
	if errors.Is(err, database.ErrNotFound) {
		return ed25519.EmptyPrivateKey, false, nil
	}
	if err != nil {
		return ed25519.EmptyPrivateKey, false, err
	}
	k, err := ed25519.PrivateKeyFromBytes(v)
	if err != nil {
		return ed25519.EmptyPrivateKey, false, err
	}
	return k, true, nil
}

// SetKey stores [privateKey] under [name].
func SetKey(ctx context.Context, db state.Mutable, privateKey ed25519.PrivateKey, name string) error {
	return db.Put(ctx, namedKey(name), privateKey[:])
}
