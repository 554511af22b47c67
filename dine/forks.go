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

package dine

import (
	"fmt"

	"github.com/bedroombuilds/dining-philosophers/stopper"
)

// Forks models the table's forks as exclusively-held tokens. Each
// fork is a capacity-one channel; holding the fork means having a
// token parked in its slot. Unlike a sync.Mutex, a blocked Take can
// observe a cooperative stop.
//
// Forks imposes no acquisition order of its own. The lock-ordering
// and admission disciplines live in the strategy packages built on
// top of it.
type Forks struct {
	slots []chan struct{}
}

// NewForks returns n free forks.
func NewForks(n int) *Forks {
	slots := make([]chan struct{}, n)
	for i := range slots {
		slots[i] = make(chan struct{}, 1)
	}
	return &Forks{slots: slots}
}

// Len returns the number of forks.
func (f *Forks) Len() int {
	return len(f.slots)
}

// Take blocks until fork i is held or a stop is requested.
func (f *Forks) Take(ctx *stopper.Context, i int) error {
	select {
	case f.slots[i] <- struct{}{}:
		return nil
	default:
	}
	select {
	case f.slots[i] <- struct{}{}:
		return nil
	case <-ctx.Stopping():
		return fmt.Errorf("taking fork %d: %w", i, stopper.ErrStopped)
	case <-ctx.Done():
		return fmt.Errorf("taking fork %d: %w", i, ctx.Err())
	}
}

// TryTake acquires fork i without blocking, reporting whether the
// fork was free.
func (f *Forks) TryTake(i int) bool {
	select {
	case f.slots[i] <- struct{}{}:
		return true
	default:
		return false
	}
}

// Put releases fork i. Releasing a free fork reports corruption.
func (f *Forks) Put(i int) error {
	select {
	case <-f.slots[i]:
		return nil
	default:
		return fmt.Errorf("%w: fork %d released while free", ErrCorrupt, i)
	}
}
