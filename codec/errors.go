// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "errors"

var (
	ErrInvalidAddress = errors.New("invalid address")
	ErrTrailingBytes  = errors.New("trailing bytes after decoding")
	ErrFieldNotFound  = errors.New("unexpected end of input")
)
