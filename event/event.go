// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package event

import (
	"context"
	"errors"
	"sync"
)

var (
	_ Subscription[struct{}] = (*SubscriptionFunc[struct{}])(nil)
	_ Subscription[struct{}] = (*Subscriptions[struct{}])(nil)
)

// Subscription defines how to consume events
type Subscription[T any] interface {
	// Accept returns fatal errors
	Accept(ctx context.Context, t T) error
	// Close returns fatal errors
	Close() error
}

type SubscriptionFunc[T any] struct {
	AcceptF func(ctx context.Context, t T) error
}

func (s SubscriptionFunc[T]) Accept(ctx context.Context, t T) error {
	return s.AcceptF(ctx, t)
}

func (SubscriptionFunc[_]) Close() error {
	return nil
}

// Subscriptions fans an event out to every subscription added to it. It is
// safe for concurrent use.
type Subscriptions[T any] struct {
	l    sync.RWMutex
	subs []Subscription[T]
}

func (s *Subscriptions[T]) Add(sub Subscription[T]) {
	s.l.Lock()
	defer s.l.Unlock()

	s.subs = append(s.subs, sub)
}

func (s *Subscriptions[T]) Len() int {
	s.l.RLock()
	defer s.l.RUnlock()

	return len(s.subs)
}

func (s *Subscriptions[T]) Accept(ctx context.Context, t T) error {
	s.l.RLock()
	defer s.l.RUnlock()

	return NotifyAll(ctx, t, s.subs...)
}

// Close closes every subscription and forgets them.
func (s *Subscriptions[T]) Close() error {
	s.l.Lock()
	defer s.l.Unlock()

	var errs []error
	for _, sub := range s.subs {
		if err := sub.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.subs = nil
	return errors.Join(errs...)
}

func NotifyAll[T any](ctx context.Context, e T, subs ...Subscription[T]) error {
	var errs []error
	for _, sub := range subs {
		if err := sub.Accept(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
