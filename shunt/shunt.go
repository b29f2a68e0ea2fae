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

// Package shunt implements the handle onto a worker-pool-backed
// goroutine that executes blocking syscalls on behalf of a connector.
// The flavors in this package (file, UDP, TCP client, TCP accepted) all
// satisfy the same Shunt interface; SSH commands run through
// sshflow.ShellShunt, and there is no stdio or subprocess flavor. A
// process-wide worker pool (Pool) admits at most N
// concurrently-active shunts' blocking operations.
package shunt

import (
	"github.com/nabbar/flow/dispatch"
	"github.com/nabbar/flow/packet"
)

// ReadFunc is invoked on the element's dispatch thread when data or an
// event has arrived from the OS. Ownership of the packet's reference
// passes to the callback.
type ReadFunc func(p *packet.Packet)

// Shunt is the common handle every flavor exposes to its owning
// connector. Open is called once, from the dispatch thread; the
// implementation takes it from there, doing blocking I/O on a worker
// goroutine and delivering results back to onRead via disp.Invoke so
// they always run on the dispatch thread, never inside the worker:
// calls returning to the client are enqueued for the dispatch thread
// and never execute inside a worker.
type Shunt interface {
	// Open starts the shunt's worker goroutine(s). onRead is called for
	// every inbound packet/event, via the dispatch thread.
	Open(disp *dispatch.Dispatcher, onRead ReadFunc)
	// Submit hands one outbound packet to the shunt for writing. The
	// shunt takes ownership of the packet's reference.
	Submit(p *packet.Packet)
	BlockReads()
	UnblockReads()
	BlockWrites()
	UnblockWrites()
	SetIOBufferSize(n int)
	SetQueueLimit(n int)
	// Close tears down the worker and releases OS resources. Idempotent.
	Close()
}

// DefaultIOBufferSize is the maximum bytes moved in one syscall unless
// overridden by SetIOBufferSize.
const DefaultIOBufferSize = 64 * 1024

// DefaultQueueLimit is a shunt's initial queue limit, which SetQueueLimit
// replaces. The shunts in this package store the limit but do not apply
// it to their queues.
const DefaultQueueLimit = 1 << 20
