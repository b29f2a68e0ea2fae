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
	"sync"

	"github.com/nabbar/flow/dispatch"
	"github.com/nabbar/flow/packet"
)

// base holds the bookkeeping shared by every shunt flavor: the
// block/unblock flags, IO sizing, the outbound packet channel a
// worker's write loop drains, and delivery of inbound packets back to
// the dispatch thread.
type base struct {
	mu sync.Mutex

	disp   *dispatch.Dispatcher
	onRead ReadFunc

	blockedReads  bool
	blockedWrites bool
	readGate      *sync.Cond
	writeGate     *sync.Cond
	pendingWrite  *packet.Packet

	ioBufferSize int
	queueLimit   int

	writeCh chan *packet.Packet
	closeCh chan struct{}
	closed  bool
}

func newBase() base {
	b := base{
		ioBufferSize: DefaultIOBufferSize,
		queueLimit:   DefaultQueueLimit,
		writeCh:      make(chan *packet.Packet, 256),
		closeCh:      make(chan struct{}),
	}
	b.readGate = sync.NewCond(&b.mu)
	b.writeGate = sync.NewCond(&b.mu)
	return b
}

func (b *base) start(disp *dispatch.Dispatcher, onRead ReadFunc) {
	b.mu.Lock()
	b.disp = disp
	b.onRead = onRead
	b.mu.Unlock()
}

// waitReadsUnblocked blocks the calling (worker) goroutine while reads
// are blocked, waking immediately on Close.
func (b *base) waitReadsUnblocked() (stillOpen bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for b.blockedReads && !b.closed {
		b.readGate.Wait()
	}
	return !b.closed
}

// deliver hands p to onRead via the dispatch thread. Already-in-flight
// deliveries are not retracted by a subsequent BlockReads — only that
// no *new* read is scheduled once blocked; callers should check
// waitReadsUnblocked before producing p.
func (b *base) deliver(p *packet.Packet) {
	b.mu.Lock()
	disp := b.disp
	onRead := b.onRead
	b.mu.Unlock()

	if onRead == nil {
		p.Unref()
		return
	}
	if disp != nil {
		disp.Invoke(func() { onRead(p) })
	} else {
		onRead(p)
	}
}

// nextWrite blocks until a packet is available to write, or returns
// ok=false once there is nothing left to write: either the shunt
// closed outright, or BlockWrites was called and the outbound queue
// has fully drained. Callers distinguish the two with writesDrained.
func (b *base) nextWrite() (p *packet.Packet, ok bool) {
	b.mu.Lock()
	for {
		if b.pendingWrite != nil {
			p = b.pendingWrite
			b.pendingWrite = nil
			b.mu.Unlock()
			return p, true
		}
		if b.closed {
			b.mu.Unlock()
			return nil, false
		}
		if b.blockedWrites {
			select {
			case np := <-b.writeCh:
				b.pendingWrite = np
				continue
			default:
				b.mu.Unlock()
				return nil, false
			}
		}
		b.mu.Unlock()
		select {
		case <-b.closeCh:
			return nil, false
		case np := <-b.writeCh:
			b.mu.Lock()
			b.pendingWrite = np
		}
	}
}

// writesDrained reports whether the last nextWrite false return was
// caused by BlockWrites emptying the queue rather than Close: callers
// use it to decide whether they owe a STREAM_END of their own.
func (b *base) writesDrained() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.blockedWrites && !b.closed
}

func (b *base) Submit(p *packet.Packet) {
	select {
	case b.writeCh <- p:
	case <-b.closeCh:
		p.Unref()
	}
}

func (b *base) BlockReads() {
	b.mu.Lock()
	b.blockedReads = true
	b.mu.Unlock()
}

func (b *base) UnblockReads() {
	b.mu.Lock()
	b.blockedReads = false
	b.readGate.Broadcast()
	b.mu.Unlock()
}

func (b *base) BlockWrites() {
	b.mu.Lock()
	b.blockedWrites = true
	b.mu.Unlock()
}

func (b *base) UnblockWrites() {
	b.mu.Lock()
	b.blockedWrites = false
	b.writeGate.Broadcast()
	b.mu.Unlock()
}

func (b *base) SetIOBufferSize(n int) {
	b.mu.Lock()
	b.ioBufferSize = n
	b.mu.Unlock()
}

func (b *base) SetQueueLimit(n int) {
	b.mu.Lock()
	b.queueLimit = n
	b.mu.Unlock()
}

func (b *base) ioSize() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ioBufferSize
}

func (b *base) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	close(b.closeCh)
	b.readGate.Broadcast()
	b.writeGate.Broadcast()
	b.mu.Unlock()
}
