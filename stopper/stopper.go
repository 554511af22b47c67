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

// Package stopper provides a [context.Context] with cooperative
// shutdown semantics.
//
// A [Context] distinguishes between a soft-stop request, which asks
// goroutines to unwind cleanly at their next suspension point, and the
// hard cancellation of the underlying context. Blocking code should
// select on [Context.Stopping] in addition to [Context.Done].
package stopper

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// ErrStopped is returned by operations that unwound because a
// cooperative stop was requested. It unwraps to [context.Canceled].
var ErrStopped = fmt.Errorf("%w: cooperative stop requested", context.Canceled)

// A Context adds cooperative-stop bookkeeping to a [context.Context].
// Construct instances with [WithContext].
type Context struct {
	context.Context

	cancel   context.CancelFunc
	soft     context.Context // Canceled when stopping begins.
	softStop context.CancelFunc
	stopOnce sync.Once
	stopping chan struct{}
	wg       sync.WaitGroup

	mu struct {
		sync.Mutex
		err error // The first error from a tracked goroutine.
	}
}

// WithContext returns a [Context] that stops when the parent context
// is canceled or when [Context.Stop] is called.
func WithContext(parent context.Context) *Context {
	ctx, cancel := context.WithCancel(parent)
	c := &Context{
		cancel:   cancel,
		stopping: make(chan struct{}),
	}
	c.Context = ctx
	c.soft, c.softStop = context.WithCancel(ctx)
	// A canceled parent implies an immediate stop.
	go func() {
		<-ctx.Done()
		c.Stop(0)
	}()
	return c
}

// Go starts a tracked goroutine. The first non-nil error returned by
// any tracked goroutine is retained, triggers a stop, and will be
// returned from [Context.Wait].
func (c *Context) Go(fn func(ctx *Context) error) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := fn(c); err != nil {
			c.mu.Lock()
			if c.mu.err == nil {
				c.mu.err = err
			}
			c.mu.Unlock()
			c.Stop(0)
		}
	}()
}

// IsStopping returns true once a stop has been requested.
func (c *Context) IsStopping() bool {
	select {
	case <-c.stopping:
		return true
	default:
		return false
	}
}

// Stop requests a cooperative stop. Goroutines have until the grace
// period elapses to unwind before the underlying context is canceled;
// a zero grace period cancels immediately. Stop may be called any
// number of times.
func (c *Context) Stop(gracePeriod time.Duration) {
	c.stopOnce.Do(func() {
		close(c.stopping)
		c.softStop()
		if gracePeriod <= 0 {
			c.cancel()
			return
		}
		go func() {
			timer := time.NewTimer(gracePeriod)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-c.Context.Done():
			}
			c.cancel()
		}()
	})
}

// Stopping returns a channel that is closed when a stop has been
// requested.
func (c *Context) Stopping() <-chan struct{} {
	return c.stopping
}

// StoppingContext returns a plain [context.Context] that is canceled
// as soon as stopping begins. It exists to pass soft-stop awareness to
// APIs that accept only a context.
func (c *Context) StoppingContext() context.Context {
	return c.soft
}

// Wait blocks until all tracked goroutines have exited and returns
// the first error that any of them returned.
func (c *Context) Wait() error {
	c.wg.Wait()
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mu.err
}
