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

	"github.com/bedroombuilds/dining-philosophers/notify"
)

// Outcome is a convenience type alias. The Outcome of an actor tracks
// its observable phase transitions and, eventually, its terminal
// state.
type Outcome = *notify.Var[*Status]

// NewOutcome is a convenience method to allocate an Outcome.
func NewOutcome() Outcome {
	return notify.VarOf(thinking)
}

// Status describes the phase an actor is in. The phase is observable
// state for drivers and tests; no protocol synchronizes on it.
type Status struct {
	err error
}

// StatusFor constructs a terminal status. If err is nil, it returns
// the finished status; otherwise a new Status that reports the error.
func StatusFor(err error) *Status {
	if err == nil {
		return finished
	}
	return &Status{err: err}
}

// Sentinel instances of Status.
var (
	thinking = &Status{}
	hungry   = &Status{}
	eating   = &Status{}
	finished = &Status{}
)

// Completed returns true once the actor has exited its loop, either
// by finishing its cycles or by failing.
func (s *Status) Completed() bool {
	return s == finished || s.err != nil
}

// Eating returns true while the actor holds both forks.
func (s *Status) Eating() bool {
	return s == eating
}

// Err returns the error that terminated the actor's loop, if any.
func (s *Status) Err() error {
	return s.err
}

// Finished returns true if the actor completed all of its cycles.
func (s *Status) Finished() bool {
	return s == finished
}

// Hungry returns true while the actor is waiting for its forks.
func (s *Status) Hungry() bool {
	return s == hungry
}

// Thinking returns true while the actor idles between meals.
func (s *Status) Thinking() bool {
	return s == thinking
}

func (s *Status) String() string {
	switch s {
	case thinking:
		return "thinking"
	case hungry:
		return "hungry"
	case eating:
		return "eating"
	case finished:
		return "finished"
	default:
		return fmt.Sprintf("error: %v", s.err)
	}
}
