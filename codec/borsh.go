// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"bytes"
	"fmt"

	"github.com/near/borsh-go"
)

// Serialize returns the borsh encoding of [value].
func Serialize[T any](value T) ([]byte, error) {
	return borsh.Serialize(value)
}

// Deserialize decodes [data] into a new T. Unlike borsh.Deserialize, input
// that is not consumed entirely is rejected.
func Deserialize[T any](data []byte) (*T, error) {
	result := new(T)
	if err := borsh.Deserialize(result, data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFieldNotFound, err)
	}
	// Round trip to detect trailing input.
	encoded, err := borsh.Serialize(*result)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(encoded, data) {
		return nil, fmt.Errorf("%w: decoded %d of %d bytes", ErrTrailingBytes, len(encoded), len(data))
	}
	return result, nil
}
