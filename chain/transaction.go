// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/ava-labs/avalanchego/utils/set"

	"github.com/ava-labs/transfercoin/auth"
	"github.com/ava-labs/transfercoin/codec"
	"github.com/ava-labs/transfercoin/crypto/ed25519"
	"github.com/ava-labs/transfercoin/state"
)

// Message is the signed portion of a [Transaction].
type Message struct {
	RecentBlockhash ids.ID        `json:"recentBlockhash"`
	Payer           codec.Address `json:"payer"`
	Instructions    []Instruction `json:"instructions"`
}

type Transaction struct {
	Message    Message             `json:"message"`
	Signatures []ed25519.Signature `json:"signatures"`
}

type wireTransaction struct {
	Message    Message
	Signatures []ed25519.Signature
}

func NewTx(payer codec.Address, instructions ...Instruction) *Transaction {
	return &Transaction{
		Message: Message{
			Payer:        payer,
			Instructions: instructions,
		},
	}
}

// Digest serializes the current message. It is recomputed on every call so
// that a message changed after signing no longer verifies.
func (t *Transaction) Digest() ([]byte, error) {
	return codec.Serialize(t.Message)
}

// Signers returns the distinct accounts that must sign the transaction, fee
// payer first and then in the order they are referenced.
func (t *Transaction) Signers() []codec.Address {
	signers := []codec.Address{t.Message.Payer}
	seen := set.Of(t.Message.Payer)
	for _, ix := range t.Message.Instructions {
		for _, meta := range ix.Accounts {
			if !meta.IsSigner || seen.Contains(meta.Address) {
				continue
			}
			seen.Add(meta.Address)
			signers = append(signers, meta.Address)
		}
	}
	return signers
}

// Sign sets [recentBlockhash] and signs the message with [keys]. Every
// signer of the transaction must have a matching key.
func (t *Transaction) Sign(recentBlockhash ids.ID, keys ...ed25519.PrivateKey) error {
	t.Message.RecentBlockhash = recentBlockhash

	msg, err := t.Digest()
	if err != nil {
		return err
	}
	byAddress := make(map[codec.Address]ed25519.PrivateKey, len(keys))
	for _, k := range keys {
		byAddress[auth.NewED25519Address(k.PublicKey())] = k
	}
	signers := t.Signers()
	signatures := make([]ed25519.Signature, len(signers))
	for i, signer := range signers {
		k, ok := byAddress[signer]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingSigner, signer)
		}
		signatures[i] = k.Sign(msg)
	}
	t.Signatures = signatures
	return nil
}

// Verify checks that every signer produced a valid signature over the message.
func (t *Transaction) Verify() error {
	if len(t.Message.Instructions) == 0 {
		return ErrNoInstructions
	}
	signers := t.Signers()
	if len(t.Signatures) != len(signers) {
		return fmt.Errorf("%w: expected %d, got %d", ErrInvalidSignatureCount, len(signers), len(t.Signatures))
	}
	msg, err := t.Digest()
	if err != nil {
		return err
	}
	pks := make([]ed25519.PublicKey, len(signers))
	for i, signer := range signers {
		pk, err := auth.PublicKey(signer)
		if err != nil {
			return fmt.Errorf("%w: %s", err, signer)
		}
		pks[i] = pk
	}
	if i, ok := ed25519.VerifyAll(msg, pks, t.Signatures); !ok {
		return fmt.Errorf("%w: %s", ErrInvalidSignature, signers[i])
	}
	return nil
}

// ID is the hash of the fee payer's signature. Signing the same message with
// the same key always produces the same ID.
func (t *Transaction) ID() ids.ID {
	if len(t.Signatures) == 0 {
		return ids.Empty
	}
	return ids.ID(hashing.ComputeHash256Array(t.Signatures[0][:]))
}

// StateKeys returns every account the transaction touches with the union of
// its permissions. Programs are only read.
func (t *Transaction) StateKeys() state.Keys {
	keys := make(state.Keys)
	keys.Add(string(t.Message.Payer[:]), state.Write)
	for _, ix := range t.Message.Instructions {
		keys.Add(string(ix.ProgramID[:]), state.Read)
		for _, meta := range ix.Accounts {
			if meta.IsWritable {
				keys.Add(string(meta.Address[:]), state.Write)
			} else {
				keys.Add(string(meta.Address[:]), state.Read)
			}
		}
	}
	return keys
}

// IsSigner reports whether [addr] must sign the transaction.
func (t *Transaction) IsSigner(addr codec.Address) bool {
	for _, signer := range t.Signers() {
		if signer == addr {
			return true
		}
	}
	return false
}

func (t *Transaction) Bytes() ([]byte, error) {
	if len(t.Signatures) == 0 {
		return nil, ErrTransactionNotSigned
	}
	return codec.Serialize(wireTransaction{Message: t.Message, Signatures: t.Signatures})
}

func UnmarshalTx(b []byte) (*Transaction, error) {
	w, err := codec.Deserialize[wireTransaction](b)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTransactionBytes, err)
	}
	return &Transaction{Message: w.Message, Signatures: w.Signatures}, nil
}
