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

// Package pad implements connection points on elements and the push
// propagation rule between them. Pads are not safe for
// concurrent mutation from more than one goroutine: they belong to the
// single dispatch thread that owns their pipeline.
package pad

import (
	"github.com/nabbar/flow/dispatch"
	"github.com/nabbar/flow/packet"
	"github.com/nabbar/flow/pqueue"
)

// Direction distinguishes input pads (own a queue) from output pads
// (reference a peer's queue via the peer pad itself).
type Direction uint8

const (
	DirectionInput Direction = iota
	DirectionOutput
)

// Owner is the back-reference a pad holds to its owning element. It is
// deliberately minimal: a pad does not own its element, and calls back
// into it only to deliver data or report blocking transitions.
type Owner interface {
	ProcessInput(p *Pad)
	OutputPadBlocked(p *Pad)
	OutputPadUnblocked(p *Pad)
}

// Pad is a typed, directional connection point on an element. An input
// pad owns a packet queue; an output pad holds a pointer to its
// connected peer.
type Pad struct {
	dir     Direction
	owner   Owner
	disp    *dispatch.Dispatcher
	peer    *Pad
	queue   *pqueue.Queue // non-nil only for input pads
	blocked bool
}

// NewInput returns an unconnected input pad owned by owner.
func NewInput(owner Owner, disp *dispatch.Dispatcher) *Pad {
	return &Pad{dir: DirectionInput, owner: owner, disp: disp, queue: pqueue.New()}
}

// NewOutput returns an unconnected output pad owned by owner.
func NewOutput(owner Owner, disp *dispatch.Dispatcher) *Pad {
	return &Pad{dir: DirectionOutput, owner: owner, disp: disp}
}

func (p *Pad) Direction() Direction { return p.dir }
func (p *Pad) Owner() Owner         { return p.owner }
func (p *Pad) Peer() *Pad           { return p.peer }
func (p *Pad) IsBlocked() bool      { return p.blocked }

// Queue returns the input pad's packet queue. Nil on an output pad.
func (p *Pad) Queue() *pqueue.Queue { return p.queue }

// Connect links pads a and b, which must have opposite directions.
// Existing peers on either side are disconnected first. Symmetric.
func Connect(a, b *Pad) {
	if a.dir == b.dir {
		return
	}
	Disconnect(a)
	Disconnect(b)
	a.peer = b
	b.peer = a
}

// Disconnect severs pad's connection, clearing the peer's pointer too.
func Disconnect(p *Pad) {
	if p.peer == nil {
		return
	}
	peer := p.peer
	p.peer = nil
	if peer.peer == p {
		peer.peer = nil
	}
}

// Push transfers ownership of one reference on pkt to the peer input
// pad's queue, then schedules the peer element's ProcessInput unless
// the peer pad is blocked. output must be an output pad connected to an
// input peer; pushing with no peer drops the packet's reference, and a
// blocked peer keeps the packet queued without ProcessInput being scheduled.
func (output *Pad) Push(pkt *packet.Packet) {
	peer := output.peer
	if peer == nil {
		pkt.Unref()
		return
	}
	peer.queue.Push(pkt)
	if peer.blocked {
		return
	}
	owner := peer.owner
	if owner == nil {
		return
	}
	if output.disp != nil {
		output.disp.Invoke(func() { owner.ProcessInput(peer) })
	} else {
		owner.ProcessInput(peer)
	}
}

// Block marks pad blocked. On an output pad it notifies the owning
// element via OutputPadBlocked; on an input pad it merely pauses
// delivery, leaving already-queued packets intact.
func (p *Pad) Block() {
	if p.blocked {
		return
	}
	p.blocked = true
	if p.dir == DirectionOutput && p.owner != nil {
		p.owner.OutputPadBlocked(p)
	}
}

// Unblock clears the blocked flag. On an output pad it notifies the
// owning element via OutputPadUnblocked. On an input pad with queued
// data it re-schedules ProcessInput so delivery resumes.
func (p *Pad) Unblock() {
	if !p.blocked {
		return
	}
	p.blocked = false
	if p.dir == DirectionOutput {
		if p.owner != nil {
			p.owner.OutputPadUnblocked(p)
		}
		return
	}
	if p.queue.LengthInPackets() == 0 || p.owner == nil {
		return
	}
	owner := p.owner
	if p.disp != nil {
		p.disp.Invoke(func() { owner.ProcessInput(p) })
	} else {
		owner.ProcessInput(p)
	}
}
