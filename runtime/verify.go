// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"bytes"
	"math/bits"

	"github.com/ava-labs/transfercoin/codec"
	"github.com/ava-labs/transfercoin/consts"
	"github.com/ava-labs/transfercoin/program"
	"github.com/ava-labs/transfercoin/storage"
	"github.com/ava-labs/transfercoin/system"
)

// verifyAccount checks the changes [programID] made to one account.
//
// Only the owner may debit lamports, change data or reassign the account,
// and only if the account is writable. Data may only be resized by the
// system program when it allocates a fresh account.
func verifyAccount(programID codec.Address, pre *storage.Account, post *program.AccountInfo, writable bool) error {
	if post.Executable != pre.Executable {
		return ErrExecutableModified
	}
	if post.Owner != pre.Owner {
		if !writable || pre.Owner != programID || !isZeroed(post.Data) {
			return ErrModifiedProgramID
		}
	}
	if post.Lamports < pre.Lamports && pre.Owner != programID {
		return ErrExternalAccountLamportSpend
	}
	if post.Lamports != pre.Lamports && !writable {
		return ErrReadonlyLamportChange
	}
	if len(post.Data) != len(pre.Data) {
		if !writable ||
			programID != system.Address ||
			pre.Owner != system.Address ||
			len(pre.Data) != 0 ||
			len(post.Data) > consts.MaxAccountDataLen {
			return ErrAccountDataSizeChanged
		}
	}
	if !bytes.Equal(pre.Data, post.Data) {
		switch {
		case !writable:
			return ErrReadonlyDataModified
		case pre.Owner != programID:
			return ErrExternalAccountDataModified
		case pre.Executable:
			return ErrExecutableDataModified
		}
	}
	return nil
}

func isZeroed(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// lamportSum is a 128 bit accumulator so a program cannot hide minted
// lamports behind a uint64 overflow.
type lamportSum struct {
	hi, lo uint64
}

func (s *lamportSum) add(v uint64) {
	var carry uint64
	s.lo, carry = bits.Add64(s.lo, v, 0)
	s.hi += carry
}
