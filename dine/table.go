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
	"context"

	"github.com/bedroombuilds/dining-philosophers/stopper"
)

// A Table wires one [Actor] per seat to a [Protocol] and runs them
// concurrently.
type Table struct {
	actors   []*Actor
	cfg      Config
	events   *Events
	protocol Protocol
	runner   Runner
}

// NewTable validates the configuration and seats one actor per seat.
func NewTable(cfg Config, p Protocol) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	t := &Table{
		actors:   make([]*Actor, cfg.Actors),
		cfg:      cfg,
		protocol: p,
	}
	for i := range t.actors {
		a := &Actor{id: i, seat: Seat(i, cfg.Actors)}
		a.out.Set(thinking)
		t.actors[i] = a
	}
	return t, nil
}

// Actors returns the seated actors.
func (t *Table) Actors() []*Actor { return t.actors }

// SetEvents allows observation callbacks to be injected into the
// Table. This method should be called prior to [Table.Run].
func (t *Table) SetEvents(events *Events) { t.events = events }

// SetRunner replaces the default [GoRunner] used to execute the actor
// loops. This method should be called prior to [Table.Run].
func (t *Table) SetRunner(runner Runner) { t.runner = runner }

// Run starts the protocol and the actor loops. The returned Outcomes
// track each actor's phase; use [Wait] to block until the run
// completes. Cancellation flows through the stopper, not through the
// Runner's context.
func (t *Table) Run(ctx *stopper.Context) ([]Outcome, error) {
	if err := t.protocol.Start(ctx); err != nil {
		return nil, err
	}
	runner := t.runner
	if runner == nil {
		runner = GoRunner(ctx)
	}
	outcomes := make([]Outcome, len(t.actors))
	for i, a := range t.actors {
		a := a
		outcomes[i] = a.Outcome()
		if err := runner.Go(func(context.Context) {
			a.run(ctx, t.protocol, t.cfg, t.events)
		}); err != nil {
			a.out.Set(StatusFor(err))
		}
	}
	return outcomes, nil
}

// Wait blocks until every outcome reaches a terminal status and
// returns the first error among them.
func Wait(ctx context.Context, outcomes []Outcome) error {
outcome:
	for _, outcome := range outcomes {
		for {
			status, changed := outcome.Get()
			if status.Finished() {
				continue outcome
			}
			if err := status.Err(); err != nil {
				return err
			}
			select {
			case <-changed:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return nil
}
