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

package arbitrator

// Events provides a [Solution] with optional callbacks to observe
// mediator decisions. OnGrant and OnRelease callbacks run outside the
// mediator lock.
//
// See [Solution.SetEvents].
type Events struct {
	// OnGrant fires when a fork is assigned. The waited flag is true
	// if the request spent time in the wait queue.
	OnGrant func(actor int, side Side, fork int, waited bool)
	// OnEnqueue fires when a request could not be satisfied
	// immediately.
	OnEnqueue func(actor int, side Side, fork int)
	// OnRelease fires when a fork is returned.
	OnRelease func(actor int, side Side, fork int)
}

func (e *Events) doGrant(actor int, side Side, fork int, waited bool) {
	if e != nil && e.OnGrant != nil {
		e.OnGrant(actor, side, fork, waited)
	}
}

func (e *Events) doEnqueue(actor int, side Side, fork int) {
	if e != nil && e.OnEnqueue != nil {
		e.OnEnqueue(actor, side, fork)
	}
}

func (e *Events) doRelease(actor int, side Side, fork int) {
	if e != nil && e.OnRelease != nil {
		e.OnRelease(actor, side, fork)
	}
}
