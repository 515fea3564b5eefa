// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package system

import (
	"fmt"

	"github.com/ava-labs/transfercoin/codec"
	"github.com/ava-labs/transfercoin/consts"
	"github.com/ava-labs/transfercoin/program"
)

// ProcessInstruction is the entrypoint of the system program.
func ProcessInstruction(_ codec.Address, accounts []*program.AccountInfo, data []byte) error {
	ix, err := codec.Deserialize[Instruction](data)
	if err != nil {
		return fmt.Errorf("%w: %w", program.ErrInvalidInstructionData, err)
	}
	it := program.NewAccountIterator(accounts)
	switch ix.Type {
	case CreateAccount:
		from, err := it.Next()
		if err != nil {
			return err
		}
		to, err := it.Next()
		if err != nil {
			return err
		}
		if !to.IsSigner {
			return fmt.Errorf("%w: %s", program.ErrMissingRequiredSignature, to.Key)
		}
		return createAccount(from, to, ix.Lamports, ix.Space, ix.Owner)
	case CreateAccountWithSeed:
		from, err := it.Next()
		if err != nil {
			return err
		}
		to, err := it.Next()
		if err != nil {
			return err
		}
		base := from
		if ix.Base != from.Key {
			if base, err = it.Next(); err != nil {
				return err
			}
			if base.Key != ix.Base {
				return fmt.Errorf("%w: base %s", program.ErrInvalidArgument, base.Key)
			}
		}
		if !base.IsSigner {
			return fmt.Errorf("%w: %s", program.ErrMissingRequiredSignature, base.Key)
		}
		expected, err := CreateWithSeed(ix.Base, ix.Seed, ix.Owner)
		if err != nil {
			return err
		}
		if expected != to.Key {
			return fmt.Errorf("%w: expected %s, got %s", ErrAddressWithSeedMismatch, expected, to.Key)
		}
		return createAccount(from, to, ix.Lamports, ix.Space, ix.Owner)
	case Transfer:
		from, err := it.Next()
		if err != nil {
			return err
		}
		to, err := it.Next()
		if err != nil {
			return err
		}
		if len(from.Data) > 0 {
			return ErrTransferFromDataAccount
		}
		return transfer(from, to, ix.Lamports)
	case Assign:
		account, err := it.Next()
		if err != nil {
			return err
		}
		if !account.IsSigner {
			return fmt.Errorf("%w: %s", program.ErrMissingRequiredSignature, account.Key)
		}
		account.Owner = ix.Owner
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnknownInstruction, ix.Type)
	}
}

func createAccount(from, to *program.AccountInfo, lamports, space uint64, owner codec.Address) error {
	if to.Lamports > 0 || len(to.Data) > 0 || to.Owner != Address {
		return fmt.Errorf("%w: %s", program.ErrAccountAlreadyInUse, to.Key)
	}
	if space > consts.MaxAccountDataLen {
		return fmt.Errorf("%w: %d > %d", ErrInvalidAccountDataLen, space, consts.MaxAccountDataLen)
	}
	if err := transfer(from, to, lamports); err != nil {
		return err
	}
	to.Data = make([]byte, space)
	to.Owner = owner
	return nil
}

func transfer(from, to *program.AccountInfo, lamports uint64) error {
	if !from.IsSigner {
		return fmt.Errorf("%w: %s", program.ErrMissingRequiredSignature, from.Key)
	}
	if from.Lamports < lamports {
		return fmt.Errorf("%w: need %d, have %d", program.ErrInsufficientFunds, lamports, from.Lamports)
	}
	if from == to {
		return nil
	}
	from.Lamports -= lamports
	to.Lamports += lamports
	return nil
}
