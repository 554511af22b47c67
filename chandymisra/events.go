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

// Events provides a [Solution] with optional callbacks to observe
// fork custody. Callbacks run on agent goroutines and must not block;
// a blocked callback stalls the protocol.
//
// See [Solution.SetEvents].
type Events struct {
	// OnTransfer fires when a fork is washed and handed over.
	OnTransfer func(fork, from, to int)
	// OnDeferred fires when a request hits a clean fork or an eating
	// holder and is recorded for the end of the meal.
	OnDeferred func(fork, holder, from int)
	// OnEating fires when an agent assembles both forks for its
	// hungry actor.
	OnEating func(actor int)
}

func (e *Events) doTransfer(fork, from, to int) {
	if e != nil && e.OnTransfer != nil {
		e.OnTransfer(fork, from, to)
	}
}

func (e *Events) doDeferred(fork, holder, from int) {
	if e != nil && e.OnDeferred != nil {
		e.OnDeferred(fork, holder, from)
	}
}

func (e *Events) doEating(actor int) {
	if e != nil && e.OnEating != nil {
		e.OnEating(actor)
	}
}
