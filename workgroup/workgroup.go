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

// Package workgroup contains a size-limited pool of goroutines for
// executing tasks.
package workgroup

import (
	"context"
	"fmt"
	"sync"
)

// A Group executes tasks using a bounded number of goroutines, with a
// bounded number of pending tasks. Construct instances with
// [WithSize].
type Group struct {
	ctx  context.Context
	work chan func(context.Context)

	mu struct {
		sync.Mutex
		workers int
	}
	maxWorkers int
}

// WithSize returns a [Group] that runs at most maxWorkers tasks
// concurrently and admits at most queueDepth additional pending
// tasks. Workers exit when the context is canceled.
func WithSize(ctx context.Context, maxWorkers, queueDepth int) *Group {
	return &Group{
		ctx:        ctx,
		work:       make(chan func(context.Context), queueDepth),
		maxWorkers: maxWorkers,
	}
}

// Go submits a task for execution. It returns an error, rather than
// blocking, if the pending-task queue is full.
func (g *Group) Go(fn func(context.Context)) error {
	g.mu.Lock()
	spawned := g.mu.workers < g.maxWorkers
	if spawned {
		g.mu.workers++
	}
	g.mu.Unlock()

	if spawned {
		// The new worker is guaranteed to drain this send.
		go g.worker(fn)
		return nil
	}
	select {
	case g.work <- fn:
		return nil
	default:
		return fmt.Errorf("queue depth %d exceeded", cap(g.work))
	}
}

// Len returns the number of pending tasks.
func (g *Group) Len() int {
	return len(g.work)
}

func (g *Group) worker(fn func(context.Context)) {
	fn(g.ctx)
	for {
		select {
		case fn := <-g.work:
			fn(g.ctx)
		case <-g.ctx.Done():
			return
		}
	}
}
