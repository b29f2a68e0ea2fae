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

// Package pqueue implements the byte-precise packet FIFO used by input
// pads and shunts: an ordered sequence of packets plus a byte-offset
// cursor into the head packet.
package pqueue

import (
	"container/list"
	"sync"

	"github.com/nabbar/flow/packet"
)

// Queue is a packet FIFO with a byte cursor into its head packet. Each
// method takes the queue's mutex, so single calls are safe from several
// goroutines; a sequence of calls is not atomic as a whole.
type Queue struct {
	mu     sync.Mutex
	items  *list.List // of *packet.Packet
	cursor int        // byte offset into the head packet
	bytes  int        // length in bytes, kept incrementally
}

func New() *Queue {
	return &Queue{items: list.New()}
}

// Push appends packet p, taking ownership of one reference.
func (q *Queue) Push(p *packet.Packet) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items.PushBack(p)
	q.bytes += remainingBytes(p, 0)
}

func remainingBytes(p *packet.Packet, cursor int) int {
	if p.IsBuffer() {
		return p.GetSize() - cursor
	}
	return p.GetSize()
}

// PeekHead returns the head packet and current byte cursor without
// removing it. ok is false if the queue is empty.
func (q *Queue) PeekHead() (p *packet.Packet, cursor int, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	e := q.items.Front()
	if e == nil {
		return nil, 0, false
	}
	return e.Value.(*packet.Packet), q.cursor, true
}

// PopPacket removes and returns the head packet, resetting the cursor.
// The queue's own reference is transferred to the caller, who must
// eventually Unref it.
func (q *Queue) PopPacket() *packet.Packet {
	q.mu.Lock()
	defer q.mu.Unlock()

	e := q.items.Front()
	if e == nil {
		return nil
	}
	p := e.Value.(*packet.Packet)
	q.items.Remove(e)
	q.bytes -= remainingBytes(p, q.cursor)
	q.cursor = 0
	return p
}

// DropPacket removes the head packet and releases the queue's reference to it.
func (q *Queue) DropPacket() {
	p := q.PopPacket()
	if p != nil {
		p.Unref()
	}
}

// LengthInPackets returns the number of packets currently queued.
func (q *Queue) LengthInPackets() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Len()
}

// LengthInBytes returns the sum of remaining bytes across buffer packets
// plus the advisory sizes of object packets, per the queue invariant.
func (q *Queue) LengthInBytes() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.bytes
}

// PopBytes copies up to maxLen bytes starting at the cursor into dest,
// advancing the cursor across buffer-packet boundaries. It stops at the
// first object packet (returning the bytes collected so far); callers
// wishing to cross object packets must pop them explicitly with
// PopPacket.
func (q *Queue) PopBytes(dest []byte) (n int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for n < len(dest) {
		e := q.items.Front()
		if e == nil {
			break
		}
		p := e.Value.(*packet.Packet)
		if !p.IsBuffer() {
			break
		}
		buf := p.GetData().([]byte)
		avail := len(buf) - q.cursor
		want := len(dest) - n
		take := avail
		if take > want {
			take = want
		}
		copy(dest[n:n+take], buf[q.cursor:q.cursor+take])
		n += take
		q.cursor += take
		q.bytes -= take

		if q.cursor >= len(buf) {
			q.items.Remove(e)
			q.cursor = 0
			p.Unref()
		}
	}
	return n
}

// PopBytesExact copies exactly len(dest) bytes, or copies nothing and
// returns false if fewer than len(dest) bytes (of buffer data, before
// any object packet) are currently available.
func (q *Queue) PopBytesExact(dest []byte) bool {
	q.mu.Lock()
	avail := q.availableContiguousBufferBytesLocked()
	q.mu.Unlock()

	if avail < len(dest) {
		return false
	}
	n := q.PopBytes(dest)
	return n == len(dest)
}

func (q *Queue) availableContiguousBufferBytesLocked() int {
	total := 0
	cursor := q.cursor
	for e := q.items.Front(); e != nil; e = e.Next() {
		p := e.Value.(*packet.Packet)
		if !p.IsBuffer() {
			break
		}
		total += p.GetSize() - cursor
		cursor = 0
	}
	return total
}
