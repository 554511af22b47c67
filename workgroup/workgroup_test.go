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

package workgroup

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGroup(t *testing.T) {
	const numTasks = 128
	r := require.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g := WithSize(ctx, 4, numTasks)

	var count atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < numTasks; i++ {
		wg.Add(1)
		r.NoError(g.Go(func(context.Context) {
			defer wg.Done()
			count.Add(1)
		}))
	}
	wg.Wait()
	r.Equal(int32(numTasks), count.Load())
}

func TestQueueDepthExceeded(t *testing.T) {
	r := require.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g := WithSize(ctx, 1, 0)

	block := make(chan struct{})
	r.NoError(g.Go(func(context.Context) {
		<-block
	}))

	err := g.Go(func(context.Context) {
		r.Fail("should not execute")
	})
	r.ErrorContains(err, "queue depth 0 exceeded")
	close(block)
}
