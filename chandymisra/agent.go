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

package chandymisra

import (
	"fmt"

	"github.com/bedroombuilds/dining-philosophers/dine"
	"github.com/bedroombuilds/dining-philosophers/stopper"
)

// A slot names one of an agent's two forks.
type slot int

const (
	leftSlot slot = iota
	rightSlot
)

var slots = [2]slot{leftSlot, rightSlot}

type msgKind int

const (
	msgRequest msgKind = iota
	msgTransfer
)

// A message travels over a directed link between the two users of one
// fork. The link identifies the fork; from identifies the sender.
type message struct {
	kind msgKind
	from int
}

type cmdKind int

const (
	cmdHunger cmdKind = iota
	cmdRelease
)

// A command crosses from the actor goroutine into its agent. The
// grant channel accompanies cmdHunger and is closed by the agent when
// both forks are held.
type command struct {
	kind  cmdKind
	grant chan struct{}
}

// An agent owns one actor's fork state. All fields below cmd are
// touched only by the agent's own goroutine once [Solution.Start] has
// run.
type agent struct {
	id   int
	seat dine.Pair
	cmd  chan command
	in   [2]chan message
	out  [2]chan message
	peer [2]int

	has      [2]bool
	dirty    [2]bool
	asked    [2]bool // A request of ours is outstanding on the link.
	deferred [2]bool // A neighbor's request awaits the end of our meal.
	hungry   bool
	eating   bool
	grant    chan struct{}
}

func (a *agent) forkAt(sl slot) int {
	if sl == leftSlot {
		return a.seat.Left
	}
	return a.seat.Right
}

// serve is the agent loop. A non-nil return is a protocol violation;
// it stops the whole solution and surfaces from [Solution.Wait].
func (s *Solution) serve(ctx *stopper.Context, a *agent) error {
	for {
		select {
		case m := <-a.in[leftSlot]:
			if err := s.handle(a, leftSlot, m); err != nil {
				return err
			}
		case m := <-a.in[rightSlot]:
			if err := s.handle(a, rightSlot, m); err != nil {
				return err
			}
		case c := <-a.cmd:
			var err error
			switch c.kind {
			case cmdHunger:
				err = s.onHunger(a, c.grant)
			case cmdRelease:
				err = s.onRelease(a)
			}
			if err != nil {
				return err
			}
		case <-ctx.Stopping():
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}

func (s *Solution) handle(a *agent, sl slot, m message) error {
	fork := a.forkAt(sl)
	switch m.kind {
	case msgRequest:
		// Links are FIFO, so a request can never overtake the
		// transfer that would satisfy it. Receiving one for a fork we
		// do not hold means custody tracking has diverged.
		if !a.has[sl] {
			return fmt.Errorf("%w: request for fork %d reached actor %d, who does not hold it",
				dine.ErrCorrupt, fork, a.id)
		}
		if a.eating || !a.dirty[sl] {
			a.deferred[sl] = true
			s.events.doDeferred(fork, a.id, m.from)
			return nil
		}
		return s.surrender(a, sl)
	case msgTransfer:
		if a.has[sl] {
			return fmt.Errorf("%w: fork %d transferred to actor %d, who already holds it",
				dine.ErrCorrupt, fork, a.id)
		}
		a.has[sl] = true
		a.dirty[sl] = false
		a.asked[sl] = false
		s.maybeEat(a)
		return nil
	default:
		return fmt.Errorf("%w: unknown message kind %d on fork %d",
			dine.ErrCorrupt, m.kind, fork)
	}
}

// surrender washes the fork, hands it to the peer, and immediately
// asks for it back if the agent is itself hungry.
func (s *Solution) surrender(a *agent, sl slot) error {
	a.has[sl] = false
	a.dirty[sl] = false
	a.deferred[sl] = false
	if err := s.send(a, sl, message{kind: msgTransfer, from: a.id}); err != nil {
		return err
	}
	s.events.doTransfer(a.forkAt(sl), a.id, a.peer[sl])
	if a.hungry && !a.asked[sl] {
		a.asked[sl] = true
		return s.send(a, sl, message{kind: msgRequest, from: a.id})
	}
	return nil
}

func (s *Solution) onHunger(a *agent, grant chan struct{}) error {
	a.hungry = true
	a.grant = grant
	for _, sl := range slots {
		if !a.has[sl] && !a.asked[sl] {
			a.asked[sl] = true
			if err := s.send(a, sl, message{kind: msgRequest, from: a.id}); err != nil {
				return err
			}
		}
	}
	s.maybeEat(a)
	return nil
}

// onRelease ends the meal. Both forks turn dirty, and any obligation
// recorded during the meal is honored right away.
func (s *Solution) onRelease(a *agent) error {
	a.eating = false
	a.dirty[leftSlot] = true
	a.dirty[rightSlot] = true
	for _, sl := range slots {
		if a.deferred[sl] {
			if err := s.surrender(a, sl); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Solution) maybeEat(a *agent) {
	if !a.hungry || !a.has[leftSlot] || !a.has[rightSlot] {
		return
	}
	a.hungry = false
	a.eating = true
	close(a.grant)
	a.grant = nil
	s.events.doEating(a.id)
}

// send never blocks. The clean/dirty discipline caps each link at one
// request plus one transfer in flight, so a full link is a violation,
// not backpressure.
func (s *Solution) send(a *agent, sl slot, m message) error {
	select {
	case a.out[sl] <- m:
		return nil
	default:
		return fmt.Errorf("%w: link for fork %d overflowed", dine.ErrCorrupt, a.forkAt(sl))
	}
}
