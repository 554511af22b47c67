// Copyright 2026 The dining-philosophers Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package notify contains a utility for observing changes to a
// variable over time.
package notify

import "sync"

// A Var is a variable whose values may be waited upon. The zero value
// of a Var is ready to use, holding the zero value of T.
//
// A Var is internally synchronized and should not be copied after
// first use.
type Var[T any] struct {
	mu struct {
		sync.Mutex
		data    T
		updated chan struct{}
	}
}

// VarOf returns a [Var] that has been initialized to the given value.
func VarOf[T any](val T) *Var[T] {
	v := &Var[T]{}
	v.mu.data = val
	return v
}

// Get returns the current value and a channel that will be closed the
// next time [Var.Set] is called.
func (v *Var[T]) Get() (value T, changed <-chan struct{}) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.mu.updated == nil {
		v.mu.updated = make(chan struct{})
	}
	return v.mu.data, v.mu.updated
}

// Peek returns the current value without setting up a notification
// channel.
func (v *Var[T]) Peek() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mu.data
}

// Set replaces the current value and wakes any goroutines blocked on
// a channel previously returned from [Var.Get].
func (v *Var[T]) Set(val T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.mu.data = val
	if v.mu.updated != nil {
		close(v.mu.updated)
		v.mu.updated = nil
	}
}

// Update atomically applies the function to the value in the Var. If
// the function returns an error, the Var is not modified and no
// notification takes place. The new value is returned.
func (v *Var[T]) Update(fn func(old T) (T, error)) (T, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	next, err := fn(v.mu.data)
	if err != nil {
		return *new(T), err
	}
	v.mu.data = next
	if v.mu.updated != nil {
		close(v.mu.updated)
		v.mu.updated = nil
	}
	return next, nil
}
