// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lockmap

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/transfercoin/state"
)

func TestLockUnlockReleasesEntry(t *testing.T) {
	require := require.New(t)
	l := New(4)

	l.Lock("a")
	l.RLock("b")
	require.Equal(2, l.Locks())

	l.Unlock("a")
	require.Equal(1, l.Locks())
	l.RUnlock("b")
	require.Zero(l.Locks())
}

func TestConcurrentReaders(t *testing.T) {
	require := require.New(t)
	l := New(1)

	l.RLock("a")
	done := make(chan struct{})
	go func() {
		l.RLock("a")
		l.RUnlock("a")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		require.FailNow("second reader blocked")
	}
	l.RUnlock("a")
	require.Zero(l.Locks())
}

func TestWriterExcludes(t *testing.T) {
	require := require.New(t)
	l := New(1)

	l.Lock("a")
	acquired := make(chan struct{})
	go func() {
		l.Lock("a")
		close(acquired)
	}()
	select {
	case <-acquired:
		require.FailNow("writer acquired held lock")
	case <-time.After(50 * time.Millisecond):
	}
	l.Unlock("a")
	<-acquired
	require.Equal(1, l.Locks())
	l.Unlock("a")
	require.Zero(l.Locks())
}

func TestLockKeys(t *testing.T) {
	require := require.New(t)
	l := New(4)

	keys := state.Keys{}
	keys.Add("payer", state.Write)
	keys.Add("program", state.Read)
	keys.Add("counter", state.Write)

	var (
		wg      sync.WaitGroup
		counter int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := l.LockKeys(keys)
			counter++
			release()
		}()
	}
	wg.Wait()
	require.Equal(16, counter)
	require.Zero(l.Locks())
}
