/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package shunt

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Pool is the process-wide worker pool that executes blocking syscalls
// on behalf of shunts: a parallel worker pool of OS threads. It admits
// at most Weighted slots of concurrent blocking work; excess Go calls
// queue on Acquire.
type Pool struct {
	sem *semaphore.Weighted
}

// DefaultPoolSlots bounds the number of concurrently-active blocking
// operations the process-wide pool allows.
const DefaultPoolSlots = 64

var defaultPool = NewPool(DefaultPoolSlots)

// DefaultPool returns the process-wide shunt worker pool.
func DefaultPool() *Pool { return defaultPool }

func NewPool(slots int64) *Pool {
	return &Pool{sem: semaphore.NewWeighted(slots)}
}

// Go runs fn on a new goroutine once a worker slot is available,
// releasing the slot when fn returns.
func (p *Pool) Go(ctx context.Context, fn func()) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	go func() {
		defer p.sem.Release(1)
		fn()
	}()
	return nil
}

// Run blocks the calling goroutine until a worker slot is available,
// runs fn on that slot, and returns once fn has finished. Unlike Go,
// the caller owns the goroutine: this lets a caller track fn's
// completion (e.g. through an errgroup.Group) instead of firing and
// forgetting it.
func (p *Pool) Run(ctx context.Context, fn func()) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer p.sem.Release(1)
	fn()
	return nil
}
