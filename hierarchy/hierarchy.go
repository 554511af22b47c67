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
Package hierarchy implements the resource hierarchy solution to the
dining philosophers problem.

Forks are totally ordered by index, and every actor acquires the
lower-indexed of its two adjacent forks before the higher-indexed
one. For most seats that is left before right; the last seat's pair
wraps around (N−1, 0), so that actor takes fork 0 first. A cycle in
the wait-for graph would require a descending chain in the total
order, so deadlock is impossible by construction. Nothing prevents an
actor from being perpetually outraced for its first fork, so the
hierarchy does not bound starvation.
*/
package hierarchy

import (
	"fmt"

	"github.com/bedroombuilds/dining-philosophers/dine"
	"github.com/bedroombuilds/dining-philosophers/stopper"
)

// Solution acquires forks in ascending index order.
type Solution struct {
	events *Events
	forks  *dine.Forks
	n      int
}

var _ dine.Protocol = (*Solution)(nil)

// New returns a hierarchy solution for a table with n seats.
func New(n int) (*Solution, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: have %d", dine.ErrTableSize, n)
	}
	return &Solution{forks: dine.NewForks(n), n: n}, nil
}

// SetEvents allows observation callbacks to be injected. This method
// should be called prior to any acquisition.
func (s *Solution) SetEvents(events *Events) { s.events = events }

// Start implements [dine.Protocol].
func (s *Solution) Start(*stopper.Context) error { return nil }

// Stop implements [dine.Protocol].
func (s *Solution) Stop() {}

// AcquirePair implements [dine.Protocol]. Both takes respect the
// global fork order; only the second take can find the fork busy
// while the actor already holds one.
func (s *Solution) AcquirePair(ctx *stopper.Context, actor int) error {
	seat := dine.Seat(actor, s.n)
	first, second := seat.Low(), seat.High()

	s.events.doTake(actor, first)
	if err := s.forks.Take(ctx, first); err != nil {
		return err
	}
	s.events.doTake(actor, second)
	if err := s.forks.Take(ctx, second); err != nil {
		if putErr := s.forks.Put(first); putErr != nil {
			return putErr
		}
		return err
	}
	return nil
}

// ReleasePair implements [dine.Protocol]. Release order is
// unconstrained by the hierarchy.
func (s *Solution) ReleasePair(actor int) error {
	seat := dine.Seat(actor, s.n)
	if err := s.forks.Put(seat.Left); err != nil {
		return err
	}
	return s.forks.Put(seat.Right)
}
