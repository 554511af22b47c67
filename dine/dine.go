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
Package dine contains the shared scaffolding for the dining
philosophers problem: the circular seating arrangement, the actor
(philosopher) loop, and the uniform protocol surface implemented by
each of the strategy packages (hierarchy, arbitrator, occupancy,
chandymisra and the deadlock-prone naive baseline).

A run looks like this:

	proto, _ := hierarchy.New(5)
	tbl, _ := dine.NewTable(dine.Config{
		Actors: 5,
		Hold:   time.Millisecond,
		Idle:   time.Millisecond,
		Cycles: 100,
	}, proto)

	ctx := stopper.WithContext(context.Background())
	outcomes, _ := tbl.Run(ctx)

	// Wait until every philosopher has finished their cycles.
	dine.Wait(ctx, outcomes)

You construct a Table, which wires one Actor per seat to a Protocol.
Each Actor repeats a hungry, eating, thinking cycle, obtaining both of
its adjacent forks through Protocol.AcquirePair and returning them
through Protocol.ReleasePair. The Protocol implementations each break
the circular-wait deadlock differently; the Table and Actor code is
protocol-agnostic.
*/
package dine

import (
	"errors"
	"fmt"
	"time"

	"github.com/bedroombuilds/dining-philosophers/stopper"
)

var (
	// ErrTableSize is returned when a table would have fewer than two
	// seats. A single actor's left and right fork would be the same
	// fork, which is a configuration error, not a solvable contention
	// pattern.
	ErrTableSize = errors.New("a table needs at least two actors")

	// ErrCorrupt is returned when fork bookkeeping is observed in a
	// state that the protocols make impossible: a fork released by a
	// non-holder, delivered twice, or requested from an actor that
	// does not hold it. It is a fatal invariant violation, not a
	// recoverable condition.
	ErrCorrupt = errors.New("fork state corrupted")
)

// A Pair identifies the two forks adjacent to an actor's seat.
type Pair struct {
	Left  int
	Right int
}

// Seat returns the fork pair for the actor at a table with n seats.
// The circular adjacency, left = i and right = (i+1) mod n, is the
// root cause of the deadlock potential and is shared by every
// protocol.
func Seat(actor, n int) Pair {
	return Pair{Left: actor, Right: (actor + 1) % n}
}

// Low returns the lower-indexed fork of the pair.
func (p Pair) Low() int {
	if p.Left < p.Right {
		return p.Left
	}
	return p.Right
}

// High returns the higher-indexed fork of the pair.
func (p Pair) High() int {
	if p.Left > p.Right {
		return p.Left
	}
	return p.Right
}

func (p Pair) String() string {
	return fmt.Sprintf("forks [%d %d]", p.Left, p.Right)
}

// Config describes a table run.
type Config struct {
	// Actors is the number of seats, forks and concurrent actors.
	// Must be at least two.
	Actors int
	// Hold is how long an actor eats while holding both forks.
	Hold time.Duration
	// Idle is how long an actor thinks between meals.
	Idle time.Duration
	// Cycles is the number of meals each actor eats before
	// finishing. Zero means run until stopped.
	Cycles int
}

// Validate returns an error describing an unusable configuration.
func (c *Config) Validate() error {
	if c.Actors < 2 {
		return fmt.Errorf("%w: have %d", ErrTableSize, c.Actors)
	}
	if c.Cycles < 0 {
		return fmt.Errorf("negative cycle count %d", c.Cycles)
	}
	if c.Hold < 0 || c.Idle < 0 {
		return errors.New("durations must not be negative")
	}
	return nil
}

// A Protocol mediates access to the table's forks. Implementations
// are internally synchronized; a single Protocol instance serves all
// actors of one table concurrently.
type Protocol interface {
	// Start makes the protocol ready to serve acquisitions. Protocols
	// with internal goroutines (chandymisra) launch them on the given
	// stopper.
	Start(ctx *stopper.Context) error
	// AcquirePair blocks until the actor holds both adjacent forks,
	// the protocol fails, or a stop is requested. On error, no forks
	// remain held by the actor.
	AcquirePair(ctx *stopper.Context, actor int) error
	// ReleasePair returns both adjacent forks. Calling it without a
	// matching AcquirePair is a corruption error.
	ReleasePair(actor int) error
	// Stop releases any protocol-internal resources. It must be safe
	// to call more than once.
	Stop()
}
