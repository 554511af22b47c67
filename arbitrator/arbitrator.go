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
Package arbitrator implements the waiter solution to the dining
philosophers problem.

Actors never touch forks directly. Every acquisition and release goes
through a single mediator that owns the authoritative view of which
forks are free. A request for a fork is granted immediately if the
fork is free, with one exception: when only one fork in the whole
table remains free, a left-hand request is refused. An actor holding
only its left fork is the deadlock configuration; reserving the last
free fork for right-hand requests guarantees that at least one actor
can always complete its pair.

Refused and busy requests join a single wait queue. On every release
the queue is swept in arrival order and every waiter whose request
has become compatible is granted, so waiters are served FIFO among
compatible requests and starvation stays bounded by the queue
discipline rather than by luck.
*/
package arbitrator

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bedroombuilds/dining-philosophers/dine"
	"github.com/bedroombuilds/dining-philosophers/stopper"
)

// Side identifies which hand an actor is requesting a fork for. The
// left fork is, by convention, the first of the pair an actor asks
// for; the grant policy keys off this.
type Side int

// The two sides of a seat.
const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("side(%d)", int(s))
	}
}

const freeHolder = -1

// A pending request parked in the mediator's wait queue. The ready
// channel is closed, while holding the mediator lock, when the fork
// has been assigned to the waiter.
type waiter struct {
	actor int
	side  Side
	fork  int
	ready chan struct{}
}

// Solution is the central mediator. All fork state lives behind one
// exclusive lock; a release and a concurrent request linearize
// through it, so wakeups cannot be lost.
type Solution struct {
	events *Events
	n      int

	mu struct {
		sync.Mutex
		holder  []int // Indexed by fork; freeHolder when free.
		free    int   // Count of free forks.
		waiters []*waiter
	}
}

var _ dine.Protocol = (*Solution)(nil)

// New returns an arbitrated table with n seats.
func New(n int) (*Solution, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: have %d", dine.ErrTableSize, n)
	}
	s := &Solution{n: n}
	s.mu.holder = make([]int, n)
	for i := range s.mu.holder {
		s.mu.holder[i] = freeHolder
	}
	s.mu.free = n
	return s, nil
}

// SetEvents allows observation callbacks to be injected. This method
// should be called prior to any request.
func (s *Solution) SetEvents(events *Events) { s.events = events }

// Start implements [dine.Protocol].
func (s *Solution) Start(*stopper.Context) error { return nil }

// Stop implements [dine.Protocol].
func (s *Solution) Stop() {}

// Request blocks until the mediator assigns the fork on the given
// side of the actor's seat, or until a stop is requested.
func (s *Solution) Request(ctx *stopper.Context, actor int, side Side) error {
	fork := s.forkFor(actor, side)

	s.mu.Lock()
	if s.grantableLocked(fork, side) {
		s.assignLocked(fork, actor)
		s.mu.Unlock()
		s.events.doGrant(actor, side, fork, false)
		return nil
	}
	w := &waiter{actor: actor, side: side, fork: fork, ready: make(chan struct{})}
	s.mu.waiters = append(s.mu.waiters, w)
	s.mu.Unlock()
	s.events.doEnqueue(actor, side, fork)

	select {
	case <-w.ready:
		s.events.doGrant(actor, side, fork, true)
		return nil
	case <-ctx.Stopping():
	case <-ctx.Done():
	}

	// Unwind: either remove the parked request, or, if the mediator
	// granted it while we were giving up, hand the fork straight back.
	s.mu.Lock()
	if s.unqueueLocked(w) {
		s.mu.Unlock()
		return fmt.Errorf("requesting %s fork %d: %w", side, fork, stopper.ErrStopped)
	}
	s.mu.Unlock()
	if err := s.Release(actor, side); err != nil {
		return err
	}
	return fmt.Errorf("requesting %s fork %d: %w", side, fork, stopper.ErrStopped)
}

// Release returns the fork on the given side of the actor's seat and
// wakes any compatible waiters.
func (s *Solution) Release(actor int, side Side) error {
	fork := s.forkFor(actor, side)

	s.mu.Lock()
	if s.mu.holder[fork] != actor {
		holder := s.mu.holder[fork]
		s.mu.Unlock()
		return fmt.Errorf("%w: fork %d released by %d, held by %d",
			dine.ErrCorrupt, fork, actor, holder)
	}
	s.mu.holder[fork] = freeHolder
	s.mu.free++
	granted := s.sweepLocked()
	s.mu.Unlock()

	s.events.doRelease(actor, side, fork)
	for _, w := range granted {
		close(w.ready)
	}
	return nil
}

// AcquirePair implements [dine.Protocol]: the left fork is requested
// first, then the right. Failure to obtain the right fork returns
// the left one.
func (s *Solution) AcquirePair(ctx *stopper.Context, actor int) error {
	if err := s.Request(ctx, actor, Left); err != nil {
		return err
	}
	if err := s.Request(ctx, actor, Right); err != nil {
		if relErr := s.Release(actor, Left); relErr != nil {
			return relErr
		}
		return err
	}
	return nil
}

// ReleasePair implements [dine.Protocol].
func (s *Solution) ReleasePair(actor int) error {
	return errors.Join(
		s.Release(actor, Left),
		s.Release(actor, Right),
	)
}

// Free returns the number of forks the mediator currently considers
// free.
func (s *Solution) Free() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mu.free
}

func (s *Solution) forkFor(actor int, side Side) int {
	seat := dine.Seat(actor, s.n)
	if side == Left {
		return seat.Left
	}
	return seat.Right
}

// grantableLocked applies the grant policy: the fork must be free,
// and a left-hand request may not take the last free fork.
func (s *Solution) grantableLocked(fork int, side Side) bool {
	if s.mu.holder[fork] != freeHolder {
		return false
	}
	return side == Right || s.mu.free > 1
}

func (s *Solution) assignLocked(fork, actor int) {
	s.mu.holder[fork] = actor
	s.mu.free--
}

// sweepLocked scans the wait queue in arrival order and assigns
// forks to every waiter that has become compatible. The caller
// closes the ready channels after dropping the lock.
func (s *Solution) sweepLocked() []*waiter {
	var granted []*waiter
	kept := s.mu.waiters[:0]
	for _, w := range s.mu.waiters {
		if s.grantableLocked(w.fork, w.side) {
			s.assignLocked(w.fork, w.actor)
			granted = append(granted, w)
		} else {
			kept = append(kept, w)
		}
	}
	for i := len(kept); i < len(s.mu.waiters); i++ {
		s.mu.waiters[i] = nil
	}
	s.mu.waiters = kept
	return granted
}

// unqueueLocked removes the waiter, reporting whether it was still
// queued.
func (s *Solution) unqueueLocked(target *waiter) bool {
	for i, w := range s.mu.waiters {
		if w == target {
			s.mu.waiters = append(s.mu.waiters[:i], s.mu.waiters[i+1:]...)
			return true
		}
	}
	return false
}
