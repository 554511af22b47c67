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
Package chandymisra implements the Chandy-Misra solution to the dining
philosophers problem.

There is no shared fork state at all. Each actor is backed by an agent
goroutine that owns the actor's view of its two forks and talks to the
two neighboring agents over message channels, one request and transfer
link per direction per fork. A fork is either clean or dirty: it
becomes dirty the moment its holder eats with it and clean the moment
it is handed over. A holder asked for a dirty fork washes it and gives
it up; a holder asked for a clean fork, or asked while eating, records
the obligation and honors it when the meal ends.

Forks start dirty and are assigned so that the lower-numbered of each
fork's two adjacent actors holds it. The assignment is acyclic, and
the clean/dirty discipline keeps it acyclic forever, which rules out
deadlock. The deferred-obligation rule is what bounds starvation: once
a hungry neighbor has asked, the holder's very next meal is its last
before the fork changes hands.

Agents keep serving fork requests after their own actor has finished
eating, so a bounded run drains cleanly even when cycle counts differ.
*/
package chandymisra

import (
	"fmt"

	"github.com/bedroombuilds/dining-philosophers/dine"
	"github.com/bedroombuilds/dining-philosophers/stopper"
)

// Each directed link carries at most one request and one transfer at
// a time; anything beyond that is a protocol violation.
const linkDepth = 2

// Solution runs one agent goroutine per seat. Actors interact with
// their agent only through [Solution.AcquirePair] and
// [Solution.ReleasePair]; all fork custody decisions happen inside
// the agent loops.
type Solution struct {
	events *Events
	n      int
	agents []*agent
	stop   *stopper.Context
}

var _ dine.Protocol = (*Solution)(nil)

// New returns a Chandy-Misra solution for a table with n seats.
func New(n int) (*Solution, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: have %d", dine.ErrTableSize, n)
	}
	// One directed link per fork per direction. Fork f sits between
	// the actor using it with the left hand, actor f, and the actor
	// using it with the right hand, actor (f-1+n)%n.
	toLeftUser := make([]chan message, n)
	toRightUser := make([]chan message, n)
	for f := 0; f < n; f++ {
		toLeftUser[f] = make(chan message, linkDepth)
		toRightUser[f] = make(chan message, linkDepth)
	}

	s := &Solution{n: n, agents: make([]*agent, n)}
	for i := 0; i < n; i++ {
		seat := dine.Seat(i, n)
		a := &agent{
			id:   i,
			seat: seat,
			cmd:  make(chan command, 1),
		}
		a.in[leftSlot] = toLeftUser[seat.Left]
		a.in[rightSlot] = toRightUser[seat.Right]
		a.out[leftSlot] = toRightUser[seat.Left]
		a.out[rightSlot] = toLeftUser[seat.Right]
		a.peer[leftSlot] = (seat.Left - 1 + n) % n
		a.peer[rightSlot] = seat.Right
		a.has[leftSlot] = initialHolder(seat.Left) == i
		a.has[rightSlot] = initialHolder(seat.Right) == i
		a.dirty = a.has
		s.agents[i] = a
	}
	return s, nil
}

// initialHolder assigns each fork to the lower-numbered of its two
// adjacent actors, which makes the starting precedence graph acyclic.
func initialHolder(fork int) int {
	if fork == 0 {
		return 0
	}
	return fork - 1
}

// SetEvents allows observation callbacks to be injected. This method
// should be called prior to [Solution.Start].
func (s *Solution) SetEvents(events *Events) { s.events = events }

// Start implements [dine.Protocol] by launching the agent goroutines.
// The agents stop when ctx stops or [Solution.Stop] is called.
func (s *Solution) Start(ctx *stopper.Context) error {
	if s.stop != nil {
		return fmt.Errorf("%w: already started", dine.ErrCorrupt)
	}
	s.stop = stopper.WithContext(ctx)
	for _, a := range s.agents {
		a := a
		s.stop.Go(func(c *stopper.Context) error {
			return s.serve(c, a)
		})
	}
	return nil
}

// Stop implements [dine.Protocol] by asking the agents to exit.
func (s *Solution) Stop() {
	if s.stop != nil {
		s.stop.Stop(0)
	}
}

// Wait blocks until the agents have exited and returns the first
// internal error any of them detected.
func (s *Solution) Wait() error {
	if s.stop == nil {
		return nil
	}
	return s.stop.Wait()
}

// AcquirePair implements [dine.Protocol]: declare hunger to the
// actor's agent and block until the agent holds both forks.
func (s *Solution) AcquirePair(ctx *stopper.Context, actor int) error {
	if s.stop == nil {
		return fmt.Errorf("%w: protocol not started", dine.ErrCorrupt)
	}
	a := s.agents[actor]
	grant := make(chan struct{})
	select {
	case a.cmd <- command{kind: cmdHunger, grant: grant}:
	case <-ctx.Stopping():
		return fmt.Errorf("actor %d going hungry: %w", actor, stopper.ErrStopped)
	case <-s.stop.Stopping():
		return fmt.Errorf("actor %d going hungry: %w", actor, stopper.ErrStopped)
	}
	select {
	case <-grant:
		return nil
	case <-ctx.Stopping():
	case <-s.stop.Stopping():
	}
	return fmt.Errorf("actor %d waiting for forks: %w", actor, stopper.ErrStopped)
}

// ReleasePair implements [dine.Protocol]. The forks stay with the
// agent, dirty, until a neighbor asks for them.
func (s *Solution) ReleasePair(actor int) error {
	if s.stop == nil {
		return fmt.Errorf("%w: protocol not started", dine.ErrCorrupt)
	}
	a := s.agents[actor]
	select {
	case a.cmd <- command{kind: cmdRelease}:
		return nil
	case <-s.stop.Stopping():
		return fmt.Errorf("actor %d releasing: %w", actor, stopper.ErrStopped)
	}
}
