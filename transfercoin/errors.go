// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package transfercoin

import "errors"

var (
	ErrMissingAccount = errors.New("missing target account")
	ErrMalformedState = errors.New("malformed counter state")
)
