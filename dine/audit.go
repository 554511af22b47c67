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
	"sync/atomic"

	"github.com/bedroombuilds/dining-philosophers/stopper"
)

// An Audit wraps a [Protocol] and verifies the single-holder
// invariant: at any instant, each fork is held by at most one eating
// actor. A violation is a fatal StateCorruption condition and
// surfaces as an [ErrCorrupt] acquisition error.
//
// The audit observes forks at the acquire/release pair level, so it
// composes with every protocol, including chandymisra, where fork
// custody between meals belongs to the protocol's agents.
type Audit struct {
	inner   Protocol
	n       int
	holders []atomic.Int32 // 0 = unheld, otherwise actor+1
	peak    atomic.Int32   // Most actors ever simultaneously eating or mid-acquire rollback.
	eaters  atomic.Int32
}

var _ Protocol = (*Audit)(nil)

// NewAudit wraps the protocol for a table with n seats.
func NewAudit(p Protocol, n int) *Audit {
	return &Audit{
		inner:   p,
		n:       n,
		holders: make([]atomic.Int32, n),
	}
}

// Peak returns the largest number of actors that were ever observed
// holding their pairs simultaneously.
func (a *Audit) Peak() int { return int(a.peak.Load()) }

// Start implements [Protocol].
func (a *Audit) Start(ctx *stopper.Context) error { return a.inner.Start(ctx) }

// Stop implements [Protocol].
func (a *Audit) Stop() { a.inner.Stop() }

// AcquirePair implements [Protocol], recording the holder of both
// forks after the inner protocol grants them.
func (a *Audit) AcquirePair(ctx *stopper.Context, actor int) error {
	if err := a.inner.AcquirePair(ctx, actor); err != nil {
		return err
	}
	seat := Seat(actor, a.n)
	for _, fork := range []int{seat.Left, seat.Right} {
		if !a.holders[fork].CompareAndSwap(0, int32(actor)+1) {
			other := a.holders[fork].Load() - 1
			return fmt.Errorf("%w: fork %d held by both %d and %d",
				ErrCorrupt, fork, other, actor)
		}
	}
	eaters := a.eaters.Add(1)
	for {
		peak := a.peak.Load()
		if eaters <= peak || a.peak.CompareAndSwap(peak, eaters) {
			break
		}
	}
	return nil
}

// ReleasePair implements [Protocol].
func (a *Audit) ReleasePair(actor int) error {
	seat := Seat(actor, a.n)
	var err error
	for _, fork := range []int{seat.Left, seat.Right} {
		if !a.holders[fork].CompareAndSwap(int32(actor)+1, 0) {
			err = fmt.Errorf("%w: fork %d released by %d, not held by them",
				ErrCorrupt, fork, actor)
		}
	}
	a.eaters.Add(-1)
	if relErr := a.inner.ReleasePair(actor); err == nil {
		err = relErr
	}
	return err
}
