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
Package occupancy implements the bounded occupancy solution to the
dining philosophers problem.

An admission gate with N−1 permits caps how many actors may reach for
forks at all. With strictly fewer than N actors active on N forks
arranged in a ring, the wait-for graph cannot close into a cycle, so
the underlying acquisition can stay the naive left-then-right order.
The permit is taken before the first fork and returned only after
both forks are back on the table; every exit path, including a stop
while waiting for a fork, returns the permit.
*/
package occupancy

import (
	"fmt"

	"golang.org/x/sync/semaphore"

	"github.com/bedroombuilds/dining-philosophers/dine"
	"github.com/bedroombuilds/dining-philosophers/naive"
	"github.com/bedroombuilds/dining-philosophers/stopper"
)

// Solution gates a naive pairwise acquisition behind N−1 admission
// permits.
type Solution struct {
	gate  *semaphore.Weighted
	inner *naive.Solution
	n     int
}

var _ dine.Protocol = (*Solution)(nil)

// New returns a bounded occupancy solution for a table with n seats.
// A table with fewer than two seats would have an empty gate and is
// rejected.
func New(n int) (*Solution, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: have %d", dine.ErrTableSize, n)
	}
	inner, err := naive.New(n)
	if err != nil {
		return nil, err
	}
	return &Solution{
		gate:  semaphore.NewWeighted(int64(n - 1)),
		inner: inner,
		n:     n,
	}, nil
}

// Start implements [dine.Protocol].
func (s *Solution) Start(*stopper.Context) error { return nil }

// Stop implements [dine.Protocol].
func (s *Solution) Stop() {}

// AcquirePair implements [dine.Protocol]: admission permit first,
// then the naive fork pair.
func (s *Solution) AcquirePair(ctx *stopper.Context, actor int) error {
	if err := s.gate.Acquire(ctx.StoppingContext(), 1); err != nil {
		return fmt.Errorf("admission gate: %w", stopper.ErrStopped)
	}
	if err := s.inner.AcquirePair(ctx, actor); err != nil {
		s.gate.Release(1)
		return err
	}
	return nil
}

// ReleasePair implements [dine.Protocol]. The permit goes back after
// both forks.
func (s *Solution) ReleasePair(actor int) error {
	err := s.inner.ReleasePair(actor)
	s.gate.Release(1)
	return err
}

// TryFill reports how many of the N−1 permits are currently free by
// draining and restoring the gate. It exists for tests and
// diagnostics; it must not run concurrently with actors.
func (s *Solution) TryFill() int {
	free := 0
	for s.gate.TryAcquire(1) {
		free++
	}
	if free > 0 {
		s.gate.Release(int64(free))
	}
	return free
}
