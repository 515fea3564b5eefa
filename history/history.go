// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package history keeps a queryable SQLite log of every transaction the
// runtime executed.
package history

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ava-labs/avalanchego/utils/perms"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ava-labs/transfercoin/codec"
	"github.com/ava-labs/transfercoin/event"
	"github.com/ava-labs/transfercoin/runtime"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

var _ event.Subscription[*runtime.Result] = (*Store)(nil)

// Record is one executed transaction.
type Record struct {
	gorm.Model
	TxID         string `gorm:"column:tx_id;not null;index;size:64"`
	Slot         uint64 `gorm:"column:slot;not null;index"`
	Payer        string `gorm:"column:payer;not null;index;size:64"`
	Instructions int    `gorm:"column:instructions;not null"`
	Status       string `gorm:"column:status;not null;size:16"`
	Error        string `gorm:"column:error;type:text"`
}

// TableName specifies the table name for Record
func (Record) TableName() string {
	return "transactions"
}

type Store struct {
	l  sync.Mutex
	db *gorm.DB
}

// Open opens (creating if needed) the SQLite database at [path].
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), perms.ReadWriteExecute); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("failed to migrate history: %w", err)
	}
	return &Store{db: db}, nil
}

// Accept records [result].
func (s *Store) Accept(ctx context.Context, result *runtime.Result) error {
	r := &Record{
		TxID:         result.TxID.String(),
		Slot:         result.Slot,
		Payer:        result.Payer.String(),
		Instructions: result.Instructions,
		Status:       StatusSuccess,
	}
	if result.Err != nil {
		r.Status = StatusFailed
		r.Error = result.Err.Error()
	}

	s.l.Lock()
	defer s.l.Unlock()

	return s.db.WithContext(ctx).Create(r).Error
}

// List returns the most recent [limit] records, newest first. A [limit] of
// zero returns every record.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	s.l.Lock()
	defer s.l.Unlock()

	var records []Record
	q := s.db.WithContext(ctx).Order("id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// ListByPayer is like [List] restricted to transactions paid by [payer].
func (s *Store) ListByPayer(ctx context.Context, payer codec.Address, limit int) ([]Record, error) {
	s.l.Lock()
	defer s.l.Unlock()

	var records []Record
	q := s.db.WithContext(ctx).Where("payer = ?", payer.String()).Order("id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Count returns how many transactions finished with [status].
func (s *Store) Count(ctx context.Context, status string) (int64, error) {
	s.l.Lock()
	defer s.l.Unlock()

	var n int64
	err := s.db.WithContext(ctx).Model(&Record{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

func (s *Store) Close() error {
	s.l.Lock()
	defer s.l.Unlock()

	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
