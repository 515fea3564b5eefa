// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ed25519 holds the keys that sign ledger transactions.
//
// Verification follows ZIP-215 (https://zips.z.cash/zip-0215), so a
// signature accepted on its own is also accepted in a batch.
package ed25519

import (
	"crypto/ed25519"
	"fmt"

	"github.com/hdevalence/ed25519consensus"

	"github.com/ava-labs/transfercoin/crypto"
)

type (
	PublicKey  [ed25519.PublicKeySize]byte
	PrivateKey [ed25519.PrivateKeySize]byte
	Signature  [ed25519.SignatureSize]byte
)

const (
	PublicKeyLen  = ed25519.PublicKeySize
	PrivateKeyLen = ed25519.PrivateKeySize
	// A private key is seed|publicKey.
	SeedLen      = ed25519.SeedSize
	SignatureLen = ed25519.SignatureSize

	// MinBatchSize is the fewest signatures [VerifyAll] checks as a batch.
	MinBatchSize = 4
)

var (
	EmptyPublicKey  = PublicKey{}
	EmptyPrivateKey = PrivateKey{}
)

func GeneratePrivateKey() (PrivateKey, error) {
	_, k, err := ed25519.GenerateKey(nil)
	if err != nil {
		return EmptyPrivateKey, err
	}
	return PrivateKey(k), nil
}

// PrivateKeyFromSeed deterministically derives the key for [seed].
func PrivateKeyFromSeed(seed []byte) (PrivateKey, error) {
	if len(seed) != SeedLen {
		return EmptyPrivateKey, fmt.Errorf("%w: seed must be %d bytes, got %d", crypto.ErrInvalidPrivateKey, SeedLen, len(seed))
	}
	return PrivateKey(ed25519.NewKeyFromSeed(seed)), nil
}

// PrivateKeyFromBytes parses a key file or stored key. Both the full
// 64-byte key and its 32-byte seed are accepted. A full key whose public
// half does not match its seed is rejected.
func PrivateKeyFromBytes(b []byte) (PrivateKey, error) {
	switch len(b) {
	case SeedLen:
		return PrivateKeyFromSeed(b)
	case PrivateKeyLen:
		k, err := PrivateKeyFromSeed(b[:SeedLen])
		if err != nil {
			return EmptyPrivateKey, err
		}
		if PrivateKey(b) != k {
			return EmptyPrivateKey, fmt.Errorf("%w: public key does not match seed", crypto.ErrInvalidPrivateKey)
		}
		return k, nil
	default:
		return EmptyPrivateKey, fmt.Errorf("%w: expected %d or %d bytes, got %d", crypto.ErrInvalidPrivateKey, SeedLen, PrivateKeyLen, len(b))
	}
}

func (p PrivateKey) PublicKey() PublicKey {
	return PublicKey(p[SeedLen:])
}

func (p PrivateKey) Seed() []byte {
	return p[:SeedLen]
}

// Sign is deterministic: the same key and message always produce the same
// signature, which is what makes transaction IDs stable.
func (p PrivateKey) Sign(msg []byte) Signature {
	return Signature(ed25519.Sign(p[:], msg))
}

func Verify(msg []byte, p PublicKey, s Signature) bool {
	return ed25519consensus.Verify(p[:], msg, s[:])
}

// VerifyAll checks that sigs[i] is a signature of [msg] by pks[i] for every
// i. When one is not, it returns the index of the first invalid signature.
func VerifyAll(msg []byte, pks []PublicKey, sigs []Signature) (int, bool) {
	if len(pks) != len(sigs) {
		return min(len(pks), len(sigs)), false
	}
	if len(sigs) >= MinBatchSize {
		bv := ed25519consensus.NewPreallocatedBatchVerifier(len(sigs))
		for i := range sigs {
			bv.Add(pks[i][:], msg, sigs[i][:])
		}
		if bv.Verify() {
			return -1, true
		}
	}
	for i := range sigs {
		if !Verify(msg, pks[i], sigs[i]) {
			return i, false
		}
	}
	return -1, true
}
