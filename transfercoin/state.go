// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package transfercoin

import (
	"fmt"

	"github.com/ava-labs/transfercoin/codec"
	"github.com/ava-labs/transfercoin/consts"
)

// CounterStateLen is the exact size of an account managed by this program.
const CounterStateLen = consts.Uint32Len

// CounterState is the data stored in an account managed by this program.
// It is encoded with borsh, so the counter is stored little-endian.
type CounterState struct {
	// Counter is the number of times the account has been transferred to.
	Counter uint32
}

// UnpackCounterState decodes the raw data of an account.
func UnpackCounterState(data []byte) (*CounterState, error) {
	if len(data) != CounterStateLen {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrMalformedState, CounterStateLen, len(data))
	}
	s, err := codec.Deserialize[CounterState](data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedState, err)
	}
	return s, nil
}

// Pack returns the encoded form of s.
func (s *CounterState) Pack() ([]byte, error) {
	return codec.Serialize(*s)
}

// PackInto overwrites [dst] with the encoded form of s.
func (s *CounterState) PackInto(dst []byte) error {
	if len(dst) != CounterStateLen {
		return fmt.Errorf("%w: expected %d bytes, got %d", ErrMalformedState, CounterStateLen, len(dst))
	}
	b, err := s.Pack()
	if err != nil {
		return err
	}
	copy(dst, b)
	return nil
}

// Increment adds one to the counter, wrapping to zero past [consts.MaxUint32].
func (s *CounterState) Increment() {
	s.Counter++
}
