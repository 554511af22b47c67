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

/*
Package naive contains the textbook left-then-right acquisition order.

The blocking AcquirePair can deadlock: if every actor grabs its left
fork at the same instant, each waits forever for a right fork held by
its neighbor. The package exists as an intentionally-broken baseline
for comparison and as the underlying pairwise discipline for the
occupancy package, whose admission gate makes the naive order safe.

TryAcquirePair offers a non-blocking variant that reports a retriable
error when either fork is busy; pair it with the retry package.
*/
package naive

import (
	"fmt"

	"github.com/bedroombuilds/dining-philosophers/dine"
	"github.com/bedroombuilds/dining-philosophers/retry"
	"github.com/bedroombuilds/dining-philosophers/stopper"
)

// ErrForksBusy is returned by [Solution.TryAcquirePair] when either
// fork is already held. It unwraps to [retry.ErrRetriable].
var ErrForksBusy = fmt.Errorf("%w: fork already in use", retry.ErrRetriable)

// Solution acquires each actor's left fork and then its right fork,
// with no further coordination.
type Solution struct {
	forks *dine.Forks
	n     int
}

var _ dine.Protocol = (*Solution)(nil)

// New returns a naive solution for a table with n seats.
func New(n int) (*Solution, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: have %d", dine.ErrTableSize, n)
	}
	return &Solution{forks: dine.NewForks(n), n: n}, nil
}

// Start implements [dine.Protocol].
func (s *Solution) Start(*stopper.Context) error { return nil }

// Stop implements [dine.Protocol].
func (s *Solution) Stop() {}

// AcquirePair implements [dine.Protocol]: left fork first, then
// right. A stop request while waiting for the right fork puts the
// left fork back.
func (s *Solution) AcquirePair(ctx *stopper.Context, actor int) error {
	seat := dine.Seat(actor, s.n)
	if err := s.forks.Take(ctx, seat.Left); err != nil {
		return err
	}
	if err := s.forks.Take(ctx, seat.Right); err != nil {
		if putErr := s.forks.Put(seat.Left); putErr != nil {
			return putErr
		}
		return err
	}
	return nil
}

// TryAcquirePair acquires both forks without blocking. On
// [ErrForksBusy], no forks remain held.
func (s *Solution) TryAcquirePair(actor int) error {
	seat := dine.Seat(actor, s.n)
	if !s.forks.TryTake(seat.Left) {
		return ErrForksBusy
	}
	if !s.forks.TryTake(seat.Right) {
		if err := s.forks.Put(seat.Left); err != nil {
			return err
		}
		return ErrForksBusy
	}
	return nil
}

// ReleasePair implements [dine.Protocol].
func (s *Solution) ReleasePair(actor int) error {
	seat := dine.Seat(actor, s.n)
	if err := s.forks.Put(seat.Left); err != nil {
		return err
	}
	return s.forks.Put(seat.Right)
}
