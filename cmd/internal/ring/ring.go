// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ring implements a simple ring buffer.
package ring

// Buffer is a fixed size ring buffer that overwrites its oldest
// elements when full.
type Buffer[T any] struct {
	data []T
	head int // index of the oldest unread element
	n    int // number of unread elements
}

// NewBuffer returns a Buffer able to hold n elements.
func NewBuffer[T any](n int) *Buffer[T] {
	return &Buffer[T]{data: make([]T, n)}
}

// Len returns the number of unread elements.
func (r *Buffer[T]) Len() int {
	return r.n
}

// Size returns the capacity of the buffer.
func (r *Buffer[T]) Size() int {
	return len(r.data)
}

// Write appends src to the buffer, discarding the oldest elements
// if there is not enough room.
func (r *Buffer[T]) Write(src []T) {
	if len(r.data) == 0 {
		return
	}
	if len(src) >= len(r.data) {
		copy(r.data, src[len(src)-len(r.data):])
		r.head = 0
		r.n = len(r.data)
		return
	}
	tail := (r.head + r.n) % len(r.data)
	k := copy(r.data[tail:], src)
	copy(r.data, src[k:])
	r.n += len(src)
	if r.n > len(r.data) {
		r.head = (r.head + r.n - len(r.data)) % len(r.data)
		r.n = len(r.data)
	}
}

// Read copies unread elements into dst and marks them read.
func (r *Buffer[T]) Read(dst []T) int {
	n := r.CopyTo(dst)
	r.Advance(n)
	return n
}

// CopyTo copies unread elements, oldest first, into dst without
// marking them read.
func (r *Buffer[T]) CopyTo(dst []T) int {
	end := r.head + r.n
	if end <= len(r.data) {
		return copy(dst, r.data[r.head:end])
	}
	n := copy(dst, r.data[r.head:])
	return n + copy(dst[n:], r.data[:end-len(r.data)])
}

// Advance marks up to n elements as read.
func (r *Buffer[T]) Advance(n int) {
	n = min(n, r.n)
	if n <= 0 {
		return
	}
	r.head = (r.head + n) % len(r.data)
	r.n -= n
}
