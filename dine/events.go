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

import "time"

// Events provides a [Table] with optional callbacks to observe actor
// phase transitions. Callbacks run on the actor's goroutine and
// should be quick.
//
// See [Table.SetEvents].
type Events struct {
	OnHungry   func(actor int)
	OnAcquired func(actor int, seat Pair, sinceHungry time.Duration)
	OnReleased func(actor int, seat Pair)
	OnFinished func(actor int, meals int)
}

func (e *Events) doHungry(actor int) {
	if e != nil && e.OnHungry != nil {
		e.OnHungry(actor)
	}
}

func (e *Events) doAcquired(actor int, seat Pair, sinceHungry time.Duration) {
	if e != nil && e.OnAcquired != nil {
		e.OnAcquired(actor, seat, sinceHungry)
	}
}

func (e *Events) doReleased(actor int, seat Pair) {
	if e != nil && e.OnReleased != nil {
		e.OnReleased(actor, seat)
	}
}

func (e *Events) doFinished(actor int, meals int) {
	if e != nil && e.OnFinished != nil {
		e.OnFinished(actor, meals)
	}
}
