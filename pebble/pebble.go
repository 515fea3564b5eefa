// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/units"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/transfercoin/state"
)

var _ state.Database = (*Database)(nil)

type Config struct {
	CacheSize                   int64 `json:"cacheSize"      yaml:"cache_size"`
	BytesPerSync                int   `json:"bytesPerSync"   yaml:"bytes_per_sync"`
	MemTableStopWritesThreshold int   `json:"memTableStopWritesThreshold" yaml:"mem_table_stop_writes_threshold"`
	MaxOpenFiles                int   `json:"maxOpenFiles"   yaml:"max_open_files"`
	ConcurrentCompactions       int   `json:"concurrentCompactions" yaml:"concurrent_compactions"`
	Sync                        bool  `json:"sync"           yaml:"sync"`
}

func NewDefaultConfig() Config {
	return Config{
		CacheSize:                   64 * units.MiB,
		BytesPerSync:                512 * units.KiB,
		MemTableStopWritesThreshold: 8,
		MaxOpenFiles:                4_096,
		ConcurrentCompactions:       1,
		Sync:                        true,
	}
}

// Database is a [state.Database] persisted with pebble.
type Database struct {
	db           *pebble.DB
	writeOptions *pebble.WriteOptions

	metrics *metrics
	closing chan struct{}
	wg      sync.WaitGroup

	closeOnce sync.Once
}

func New(file string, cfg Config) (*Database, *prometheus.Registry, error) {
	// These default settings are based on https://github.com/ethereum/go-ethereum/blob/master/ethdb/pebble/pebble.go
	d := &Database{closing: make(chan struct{})}
	cache := pebble.NewCache(cfg.CacheSize)
	defer cache.Unref()
	opts := &pebble.Options{
		Cache:                       cache,
		BytesPerSync:                cfg.BytesPerSync,
		Comparer:                    pebble.DefaultComparer,
		MemTableStopWritesThreshold: cfg.MemTableStopWritesThreshold,
		MaxOpenFiles:                cfg.MaxOpenFiles,
		MaxConcurrentCompactions:    func() int { return cfg.ConcurrentCompactions },
		EventListener: &pebble.EventListener{
			CompactionBegin: d.onCompactionBegin,
			CompactionEnd:   d.onCompactionEnd,
			WriteStallBegin: d.onWriteStallBegin,
			WriteStallEnd:   d.onWriteStallEnd,
		},
	}
	opts.Experimental.ReadSamplingMultiplier = -1 // explicitly disable seek compaction
	registry, metrics, err := newMetrics()
	if err != nil {
		return nil, nil, err
	}
	d.metrics = metrics
	db, err := pebble.Open(file, opts)
	if err != nil {
		return nil, nil, err
	}
	d.db = db
	if cfg.Sync {
		d.writeOptions = pebble.Sync
	} else {
		d.writeOptions = pebble.NoSync
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.collectMetrics()
	}()
	return d, registry, nil
}

func (d *Database) Has(key []byte) (bool, error) {
	_, err := d.Get(key)
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (d *Database) Get(key []byte) ([]byte, error) {
	start := time.Now()
	defer func() { d.metrics.getLatency.Observe(float64(time.Since(start))) }()

	data, closer, err := d.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	return slices.Clone(data), nil
}

func (d *Database) Put(key []byte, value []byte) error {
	return d.db.Set(key, value, d.writeOptions)
}

func (d *Database) Delete(key []byte) error {
	return d.db.Delete(key, d.writeOptions)
}

func (d *Database) NewBatch() database.Batch {
	return &batch{db: d, batch: d.db.NewBatch()}
}

func (d *Database) Close() error {
	var err error
	d.closeOnce.Do(func() {
		close(d.closing)
		d.wg.Wait()
		err = d.db.Close()
	})
	return err
}
