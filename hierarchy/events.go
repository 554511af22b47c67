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

package hierarchy

// Events provides a [Solution] with optional callbacks.
//
// See [Solution.SetEvents].
type Events struct {
	// OnTake fires before the actor requests the fork, in the order
	// the requests are issued.
	OnTake func(actor, fork int)
}

func (e *Events) doTake(actor, fork int) {
	if e != nil && e.OnTake != nil {
		e.OnTake(actor, fork)
	}
}
