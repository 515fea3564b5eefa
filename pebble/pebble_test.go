// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"crypto/rand"
	"fmt"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/stretchr/testify/require"
)

func newTestDB(t testing.TB, sync bool) *Database {
	cfg := NewDefaultConfig()
	cfg.Sync = sync
	db, _, err := New(t.TempDir(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, db.Close()) })
	return db
}

func TestDatabaseGetPutDelete(t *testing.T) {
	require := require.New(t)
	db := newTestDB(t, false)

	_, err := db.Get([]byte("missing"))
	require.ErrorIs(err, database.ErrNotFound)
	has, err := db.Has([]byte("missing"))
	require.NoError(err)
	require.False(has)

	require.NoError(db.Put([]byte("k"), []byte{1, 2, 3, 4}))
	v, err := db.Get([]byte("k"))
	require.NoError(err)
	require.Equal([]byte{1, 2, 3, 4}, v)

	require.NoError(db.Delete([]byte("k")))
	has, err = db.Has([]byte("k"))
	require.NoError(err)
	require.False(has)
}

func TestBatchWriteAndReplay(t *testing.T) {
	require := require.New(t)
	db := newTestDB(t, true)
	require.NoError(db.Put([]byte("old"), []byte{0}))

	b := db.NewBatch()
	require.NoError(b.Put([]byte("a"), []byte{1}))
	require.NoError(b.Delete([]byte("old")))
	require.Equal(len("a")+1+len("old"), b.Size())

	// nothing is visible before Write
	has, err := db.Has([]byte("a"))
	require.NoError(err)
	require.False(has)

	require.NoError(b.Write())
	v, err := db.Get([]byte("a"))
	require.NoError(err)
	require.Equal([]byte{1}, v)
	has, err = db.Has([]byte("old"))
	require.NoError(err)
	require.False(has)

	mem := memdb.New()
	require.NoError(mem.Put([]byte("old"), []byte{0}))
	require.NoError(b.Replay(mem))
	v, err = mem.Get([]byte("a"))
	require.NoError(err)
	require.Equal([]byte{1}, v)
	has, err = mem.Has([]byte("old"))
	require.NoError(err)
	require.False(has)

	b.Reset()
	require.Zero(b.Size())
}

func TestCloseIdempotent(t *testing.T) {
	require := require.New(t)
	db, _, err := New(t.TempDir(), NewDefaultConfig())
	require.NoError(err)
	require.NoError(db.Close())
	require.NoError(db.Close())
}

func randBytes() []byte {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		panic(err)
	}
	return b
}

func BenchmarkBatchInsertion(b *testing.B) {
	const batchSize = 10_000
	for _, sync := range []bool{false, true} {
		b.Run(fmt.Sprintf("sync=%t", sync), func(b *testing.B) {
			b.StopTimer()
			db := newTestDB(b, sync)
			keys := make([][]byte, batchSize)
			for i := 0; i < batchSize; i++ {
				keys[i] = randBytes()
			}

			b.StartTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				batch := db.NewBatch()
				for j := 0; j < batchSize; j++ {
					if err := batch.Put(keys[j], randBytes()); err != nil {
						b.Fatal(err)
					}
				}
				if err := batch.Write(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
