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

// Five actors, a hundred meals each, no deadlock and no overlapping
// holders.
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

	var mu sync.Mutex
	takes := make(map[int][]int, actors)
	s.SetEvents(&Events{
		OnTake: func(actor, fork int) {
			mu.Lock()
			defer mu.Unlock()
			takes[actor] = append(takes[actor], fork)
		},
	})

	audit := dine.NewAudit(s, actors)
	tbl, err := dine.NewTable(dine.Config{Actors: actors, Cycles: cycles}, audit)
	r.NoError(err)

	outcomes, err := tbl.Run(ctx)
	r.NoError(err)
	r.NoError(dine.Wait(ctx, outcomes))

	for _, a := range tbl.Actors() {
		r.Equal(int64(cycles), a.Meals())
	}

	// Every acquisition requested min(left,right) before
	// max(left,right), including the wrap-around seat.
	mu.Lock()
	defer mu.Unlock()
	for actor, forks := range takes {
		seat := dine.Seat(actor, actors)
		r.Len(forks, 2*cycles)
		for i := 0; i < len(forks); i += 2 {
			r.Equal(seat.Low(), forks[i], "actor %d", actor)
			r.Equal(seat.High(), forks[i+1], "actor %d", actor)
		}
	}
}

func TestWrapAroundSeatOrder(t *testing.T) {
	r := require.New(t)

	ctx := stopper.WithContext(context.Background())
	defer ctx.Stop(0)

	s, err := New(5)
	r.NoError(err)

	var order []int
	s.SetEvents(&Events{
		OnTake: func(_, fork int) {
			order = append(order, fork)
		},
	})

	// The last seat's pair is (4, 0); fork 0 must come first.
	r.NoError(s.AcquirePair(ctx, 4))
	r.Equal([]int{0, 4}, order)
	r.NoError(s.ReleasePair(4))
}

func TestAcquireObservesStop(t *testing.T) {
	r := require.New(t)

	ctx := stopper.WithContext(context.Background())
	s, err := New(2)
	r.NoError(err)

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
	r.NoError(s.ReleasePair(0))
	r.ErrorIs(s.ReleasePair(1), dine.ErrCorrupt)
}
