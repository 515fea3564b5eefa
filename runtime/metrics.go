// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "runtime"

type metrics struct {
	txsProcessed     prometheus.Counter
	txsFailed        prometheus.Counter
	txsDuplicate     prometheus.Counter
	instructions     prometheus.Counter
	accountsModified prometheus.Counter
	slot             prometheus.Gauge
	executeTx        metric.Averager
}

func newMetrics() (*prometheus.Registry, *metrics, error) {
	r := prometheus.NewRegistry()

	executeTx, err := metric.NewAverager(
		namespace+"_execute_tx",
		"time spent executing a transaction",
		r,
	)
	if err != nil {
		return nil, nil, err
	}

	m := &metrics{
		txsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "txs_processed",
			Help:      "number of txs committed",
		}),
		txsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "txs_failed",
			Help:      "number of txs rejected or rolled back",
		}),
		txsDuplicate: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "txs_duplicate",
			Help:      "number of txs rejected because they were already processed",
		}),
		instructions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "instructions",
			Help:      "number of instructions invoked",
		}),
		accountsModified: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "accounts_modified",
			Help:      "number of account writes committed",
		}),
		slot: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "slot",
			Help:      "current slot",
		}),
		executeTx: executeTx,
	}

	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.txsProcessed),
		r.Register(m.txsFailed),
		r.Register(m.txsDuplicate),
		r.Register(m.instructions),
		r.Register(m.accountsModified),
		r.Register(m.slot),
	)
	return r, m, errs.Err
}
