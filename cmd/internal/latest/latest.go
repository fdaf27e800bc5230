// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package latest implements a single-slot value holder with latest-value
// channel delivery.
package latest

import "sync"

// Value holds the most recently stored value of type T. A Value must be
// created with New.
type Value[T any] struct {
	mu  sync.Mutex
	val T
	n   uint64
	c   chan T
}

// New returns a new Value holding the zero value of T.
func New[T any]() *Value[T] {
	return &Value[T]{c: make(chan T, 1)}
}

// Store replaces the held value with v. If a previously stored value
// has not been received from C, it is discarded in favour of v.
func (l *Value[T]) Store(v T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.val = v
	l.n++
	select {
	case <-l.c:
	default:
	}
	l.c <- v
}

// Load returns the held value and the number of times Store has
// been called.
func (l *Value[T]) Load() (v T, n uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.val, l.n
}

// C returns a channel that delivers the most recently stored value
// not yet received.
func (l *Value[T]) C() <-chan T {
	return l.c
}
