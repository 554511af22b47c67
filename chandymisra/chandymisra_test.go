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
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bedroombuilds/dining-philosophers/dine"
	"github.com/bedroombuilds/dining-philosophers/stopper"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	r := require.New(t)

	_, err := New(1)
	r.ErrorIs(err, dine.ErrTableSize)

	_, err = New(2)
	r.NoError(err)
}

func TestInitialAssignment(t *testing.T) {
	r := require.New(t)

	r.Equal(0, initialHolder(0))
	r.Equal(0, initialHolder(1))
	r.Equal(3, initialHolder(4))

	// Actor 0 starts with both forks, the middle actors with one,
	// the last with none.
	const n = 5
	held := make([]int, n)
	for fork := 0; fork < n; fork++ {
		held[initialHolder(fork)]++
	}
	r.Equal([]int{2, 1, 1, 1, 0}, held)
}

// An actor that starts with no forks solicits both from its
// neighbors, and the forks travel back on request.
func TestForksTravelOnRequest(t *testing.T) {
	r := require.New(t)

	ctx := stopper.WithContext(context.Background())
	defer ctx.Stop(0)

	s, err := New(3)
	r.NoError(err)
	r.NoError(s.Start(ctx))

	// Actor 2's forks are 2 (held by actor 1) and 0 (held by actor
	// 0), both dirty, so both are handed over on request.
	r.NoError(s.AcquirePair(ctx, 2))
	r.NoError(s.ReleasePair(2))

	// Fork 0 is now with actor 2; actor 0 has to ask for it back.
	r.NoError(s.AcquirePair(ctx, 0))
	r.NoError(s.ReleasePair(0))

	s.Stop()
	r.NoError(s.Wait())
}

// A request that arrives during a meal is recorded and honored as
// soon as the meal ends, never sooner.
func TestRequestDeferredDuringMeal(t *testing.T) {
	r := require.New(t)

	ctx := stopper.WithContext(context.Background())
	defer ctx.Stop(0)

	s, err := New(3)
	r.NoError(err)

	deferredCh := make(chan [3]int, 1)
	var mu sync.Mutex
	var transfers [][3]int
	s.SetEvents(&Events{
		OnDeferred: func(fork, holder, from int) {
			select {
			case deferredCh <- [3]int{fork, holder, from}:
			default:
			}
		},
		OnTransfer: func(fork, from, to int) {
			mu.Lock()
			defer mu.Unlock()
			transfers = append(transfers, [3]int{fork, from, to})
		},
	})
	r.NoError(s.Start(ctx))

	// Actor 2 assembles forks 2 and 0 and eats.
	r.NoError(s.AcquirePair(ctx, 2))

	// Actor 1 wants forks 1 and 2. Fork 1 is dirty with actor 0 and
	// comes over; fork 2 is mid-meal with actor 2 and is deferred.
	acquireDone := make(chan error, 1)
	go func() {
		acquireDone <- s.AcquirePair(ctx, 1)
	}()

	select {
	case d := <-deferredCh:
		r.Equal([3]int{2, 2, 1}, d)
	case <-time.After(10 * time.Second):
		r.Fail("request was never deferred")
	}

	// Ending the meal honors the obligation and actor 1 eats.
	r.NoError(s.ReleasePair(2))
	select {
	case err := <-acquireDone:
		r.NoError(err)
	case <-time.After(10 * time.Second):
		r.Fail("deferred request was never honored")
	}
	r.NoError(s.ReleasePair(1))

	mu.Lock()
	r.Contains(transfers, [3]int{2, 2, 1})
	mu.Unlock()

	s.Stop()
	r.NoError(s.Wait())
}

// Five actors, a hundred meals each, no deadlock, no overlapping
// holders, and no custody violations inside the agents.
func TestFullTable(t *testing.T) {
	const actors = 5
	const cycles = 100
	r := require.New(t)

	parent, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	ctx := stopper.WithContext(parent)
	defer ctx.Stop(0)

	s, err := New(actors)
	r.NoError(err)

	audit := dine.NewAudit(s, actors)
	tbl, err := dine.NewTable(dine.Config{Actors: actors, Cycles: cycles}, audit)
	r.NoError(err)

	outcomes, err := tbl.Run(ctx)
	r.NoError(err)
	r.NoError(dine.Wait(ctx, outcomes))

	for _, a := range tbl.Actors() {
		r.Equal(int64(cycles), a.Meals())
	}

	s.Stop()
	r.NoError(s.Wait())
}

func TestAcquireObservesStop(t *testing.T) {
	r := require.New(t)

	ctx := stopper.WithContext(context.Background())
	s, err := New(2)
	r.NoError(err)
	r.NoError(s.Start(ctx))

	// Actor 0 eats with its starting forks; actor 1's requests sit
	// deferred until the stop unblocks the wait.
	r.NoError(s.AcquirePair(ctx, 0))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.AcquirePair(ctx, 1)
	}()

	ctx.Stop(time.Second)
	select {
	case acquireErr := <-errCh:
		r.ErrorIs(acquireErr, stopper.ErrStopped)
	case <-time.After(10 * time.Second):
		r.Fail("blocked acquisition did not observe the stop")
	}

	s.Stop()
	r.NoError(s.Wait())
}

func TestUseBeforeStart(t *testing.T) {
	r := require.New(t)

	ctx := stopper.WithContext(context.Background())
	defer ctx.Stop(0)

	s, err := New(3)
	r.NoError(err)
	r.ErrorIs(s.AcquirePair(ctx, 0), dine.ErrCorrupt)
	r.ErrorIs(s.ReleasePair(0), dine.ErrCorrupt)
	r.NoError(s.Wait())
}
