// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import "errors"

var (
	ErrBlockhashNotFound    = errors.New("blockhash not found")
	ErrAlreadyProcessed     = errors.New("transaction already processed")
	ErrTooManyInstructions  = errors.New("too many instructions")
	ErrProgramNotFound      = errors.New("program not found")
	ErrProgramNotExecutable = errors.New("program is not executable")
	ErrDuplicateBuiltin     = errors.New("builtin already registered")
	ErrUnknownBuiltin       = errors.New("unknown builtin")
	ErrProgramPanicked      = errors.New("program panicked")
	ErrInstructionFailed    = errors.New("instruction failed")
	ErrLamportsOverflow     = errors.New("lamports overflow")

	// Account rule violations, checked after every instruction.
	ErrExecutableModified          = errors.New("executable flag modified")
	ErrModifiedProgramID           = errors.New("instruction modified the program id of an account")
	ErrExternalAccountLamportSpend = errors.New("instruction spent from the balance of an account it does not own")
	ErrReadonlyLamportChange       = errors.New("instruction changed the balance of a read-only account")
	ErrAccountDataSizeChanged      = errors.New("instruction changed the size of the account data")
	ErrReadonlyDataModified        = errors.New("instruction modified data of a read-only account")
	ErrExternalAccountDataModified = errors.New("instruction modified data of an account it does not own")
	ErrExecutableDataModified      = errors.New("instruction changed executable accounts data")
	ErrUnbalancedInstruction       = errors.New("sum of account balances before and after instruction do not match")
)
