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
	"sync/atomic"
	"time"

	"github.com/bedroombuilds/dining-philosophers/notify"
	"github.com/bedroombuilds/dining-philosophers/stopper"
)

// An Actor is one philosopher: a repeating hungry, eating, thinking
// cycle driven through a [Protocol]. Actors are created by
// [NewTable]; the exported methods are safe for concurrent use.
type Actor struct {
	id    int
	seat  Pair
	meals atomic.Int64
	out   notify.Var[*Status]
}

// ID returns the actor's seat index.
func (a *Actor) ID() int { return a.id }

// Seat returns the actor's adjacent fork pair.
func (a *Actor) Seat() Pair { return a.seat }

// Meals returns the number of completed eat cycles.
func (a *Actor) Meals() int64 { return a.meals.Load() }

// Outcome returns the actor's observable status variable.
func (a *Actor) Outcome() Outcome { return &a.out }

// run executes the actor loop until the configured cycles complete or
// a stop is requested. Any forks held when the loop unwinds are
// released before it reports a terminal status.
func (a *Actor) run(ctx *stopper.Context, p Protocol, cfg Config, events *Events) {
	for cycle := 0; cfg.Cycles == 0 || cycle < cfg.Cycles; cycle++ {
		hungryAt := time.Now()
		a.out.Set(hungry)
		events.doHungry(a.id)

		if err := a.acquire(ctx, p); err != nil {
			a.out.Set(StatusFor(err))
			return
		}
		a.out.Set(eating)
		events.doAcquired(a.id, a.seat, time.Since(hungryAt))

		held := sleep(ctx, cfg.Hold)
		err := p.ReleasePair(a.id)
		events.doReleased(a.id, a.seat)
		if err != nil {
			a.out.Set(StatusFor(err))
			return
		}
		if !held {
			a.out.Set(StatusFor(stopper.ErrStopped))
			return
		}
		a.meals.Add(1)

		a.out.Set(thinking)
		if !sleep(ctx, cfg.Idle) {
			a.out.Set(StatusFor(stopper.ErrStopped))
			return
		}
	}
	events.doFinished(a.id, int(a.meals.Load()))
	a.out.Set(finished)
}

func (a *Actor) acquire(ctx *stopper.Context, p Protocol) error {
	err := p.AcquirePair(ctx, a.id)
	if err == nil && ctx.IsStopping() {
		// Won the race against a stop request; unwind rather than
		// holding forks into shutdown.
		if relErr := p.ReleasePair(a.id); relErr != nil {
			return relErr
		}
		return stopper.ErrStopped
	}
	return err
}

// sleep waits for the given duration. It returns false if a stop was
// requested before the duration elapsed.
func sleep(ctx *stopper.Context, d time.Duration) bool {
	if d <= 0 {
		return !ctx.IsStopping()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Stopping():
		return false
	}
}
