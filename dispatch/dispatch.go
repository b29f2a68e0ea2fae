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

// Package dispatch implements the single cooperative dispatch loop that
// drives packet propagation for one pipeline. A Dispatcher is not safe
// for concurrent use by more than one goroutine: exactly one dispatch
// thread owns a given pipeline's element and pad graph.
package dispatch

import "sync"

// DefaultMaxDepth bounds inline recursion through Pad.Push -> ProcessInput
// chains before the dispatcher trampolines through its work queue
// instead, to bound stack depth.
const DefaultMaxDepth = 256

// Dispatcher owns the pending-work trampoline for one pipeline.
type Dispatcher struct {
	mu       sync.Mutex
	maxDepth int
	depth    int
	pending  []func()
	draining bool
}

// New returns a Dispatcher with the default recursion bound.
func New() *Dispatcher {
	return &Dispatcher{maxDepth: DefaultMaxDepth}
}

// NewWithDepth returns a Dispatcher with a custom recursion bound.
func NewWithDepth(maxDepth int) *Dispatcher {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Dispatcher{maxDepth: maxDepth}
}

// Invoke runs fn inline if the current call chain depth is within bound,
// or enqueues it to run once the current drain loop unwinds. Callers
// (Pad.Push) use this to schedule a peer element's ProcessInput.
func (d *Dispatcher) Invoke(fn func()) {
	d.mu.Lock()
	if d.depth < d.maxDepth {
		d.depth++
		d.mu.Unlock()

		fn()

		d.mu.Lock()
		d.depth--
		drain := !d.draining && d.depth == 0 && len(d.pending) > 0
		d.mu.Unlock()

		if drain {
			d.drain()
		}
		return
	}

	d.pending = append(d.pending, fn)
	d.mu.Unlock()
}

func (d *Dispatcher) drain() {
	d.mu.Lock()
	if d.draining {
		d.mu.Unlock()
		return
	}
	d.draining = true
	d.mu.Unlock()

	for {
		d.mu.Lock()
		if len(d.pending) == 0 {
			d.draining = false
			d.mu.Unlock()
			return
		}
		fn := d.pending[0]
		d.pending = d.pending[1:]
		d.mu.Unlock()

		fn()
	}
}

// Pump runs any work currently queued. Synchronous client APIs (the
// FlowIO façade) call this repeatedly while waiting on a predicate,
// layering blocking convenience on top of the async core.
func (d *Dispatcher) Pump() {
	d.drain()
}

// Pending reports how many trampolined calls are currently queued, for tests.
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}
