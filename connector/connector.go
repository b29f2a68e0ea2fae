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

// Package connector implements the client-facing leaf elements that
// own a shunt, translating its stream-lifecycle events into a state
// machine: TCP, UDP, file and stdio connectors, and the SSH-runner
// connector all share this same transition table — they differ only
// in which events their backing shunt is capable of producing.
package connector

import (
	"github.com/nabbar/flow/dispatch"
	"github.com/nabbar/flow/event"
	"github.com/nabbar/flow/packet"
	"github.com/nabbar/flow/pad"
	"github.com/nabbar/flow/shunt"
)

// State is one of the four connector lifecycle states.
type State uint8

const (
	Disconnected State = iota
	Connecting
	Connected
	Disconnecting
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "DISCONNECTED"
	case Connecting:
		return "CONNECTING"
	case Connected:
		return "CONNECTED"
	case Disconnecting:
		return "DISCONNECTING"
	default:
		return "UNKNOWN"
	}
}

// DefaultWriteQueueLimit bounds the client-facing input queue before
// the connector blocks its client-facing input pad. This backpressure
// rule is universal across connectors.
const DefaultWriteQueueLimit = 1 << 20

// DefaultWriteQueueCountLimit bounds the packet count of that same queue.
const DefaultWriteQueueCountLimit = 4096

// Opener creates the backing shunt once the client requests a
// connection. Each connector flavor (TCP, UDP, file, stdio, SSH runner)
// supplies its own Opener.
type Opener func() shunt.Shunt

// Connector is a simplex element (one client-facing input, one
// client-facing output) that owns a shunt facing the OS. It talks to
// the shunt through the two callbacks and two method groups of spec
// §4.5, not through pads: Submit for outbound data, onRead for
// everything inbound.
type Connector struct {
	in   *pad.Pad
	out  *pad.Pad
	disp *dispatch.Dispatcher

	open  Opener
	shunt shunt.Shunt
	state State

	WriteQueueLimit      int
	WriteQueueCountLimit int
}

// New returns a Connector in the DISCONNECTED state.
func New(disp *dispatch.Dispatcher, open Opener) *Connector {
	c := &Connector{
		disp:                 disp,
		open:                 open,
		WriteQueueLimit:      DefaultWriteQueueLimit,
		WriteQueueCountLimit: DefaultWriteQueueCountLimit,
	}
	c.in = pad.NewInput(c, disp)
	c.out = pad.NewOutput(c, disp)
	return c
}

func (c *Connector) InputPad() *pad.Pad  { return c.in }
func (c *Connector) OutputPad() *pad.Pad { return c.out }

func (c *Connector) InputPads() []*pad.Pad  { return []*pad.Pad{c.in} }
func (c *Connector) OutputPads() []*pad.Pad { return []*pad.Pad{c.out} }

func (c *Connector) State() State { return c.state }

func (c *Connector) HandleUniversalEvent(e *event.PropertyEvent) {}

// ProcessInput handles client-facing pushes: connect requests, outbound
// data, and a client-initiated STREAM_END. Shunt-originated events
// arrive out of band via onShuntRead, scheduled on the dispatch thread
// by the shunt itself.
func (c *Connector) ProcessInput(p *pad.Pad) {
	if p != c.in {
		return
	}
	// A burst that overruns either limit blocks the pad for the next
	// push even though this call still drains what already arrived:
	// the backlog itself, not any one packet, is what the producer
	// needs to hear about.
	over := c.backlogOverLimit()

	for {
		pkt := c.in.Queue().PopPacket()
		if pkt == nil {
			break
		}

		if pkt.IsObject() {
			if de, ok := pkt.GetData().(*event.DetailedEvent); ok {
				if c.state == Disconnected && de.MatchesDomain(event.DomainStream) {
					c.beginConnect()
				} else if c.state == Connected && de.Matches(event.DomainStream, event.StreamEnd) {
					c.state = Disconnecting
					if c.shunt != nil {
						c.shunt.BlockWrites()
					}
				}
				pkt.Unref()
				continue
			}
		}

		if c.shunt != nil && c.state != Disconnected {
			c.shunt.Submit(pkt)
		} else {
			pkt.Unref()
		}
	}

	c.setBackpressure(over)
}

func (c *Connector) beginConnect() {
	c.state = Connecting
	c.shunt = c.open()
	c.shunt.Open(c.disp, c.onShuntRead)
}

// AttachAccepted wires an already-open shunt (e.g. a TCP connection a
// listener just accepted) directly, skipping the client-initiated
// CONNECTING phase — the connection exists before the connector does.
func (c *Connector) AttachAccepted(s shunt.Shunt) {
	c.state = Connecting
	c.shunt = s
	c.shunt.Open(c.disp, c.onShuntRead)
}

// onShuntRead is invoked, always on the dispatch thread, for every
// packet or lifecycle event the shunt produces.
func (c *Connector) onShuntRead(pkt *packet.Packet) {
	if pkt.IsObject() {
		if de, ok := pkt.GetData().(*event.DetailedEvent); ok {
			switch {
			case de.Matches(event.DomainStream, event.StreamBegin):
				c.state = Connected
			case de.Matches(event.DomainStream, event.StreamDenied):
				c.dropShunt()
			case de.Matches(event.DomainStream, event.StreamEnd):
				c.dropShunt()
			}
		}
	}
	c.out.Push(pkt)
}

func (c *Connector) dropShunt() {
	c.state = Disconnected
	if c.shunt != nil {
		c.shunt.Close()
	}
	c.shunt = nil
	c.out.Unblock()
}

// backlogOverLimit reports whether the client-facing input queue, as
// it stood when this ProcessInput call began, already exceeded either
// limit.
func (c *Connector) backlogOverLimit() bool {
	q := c.in.Queue()
	return q.LengthInBytes() > c.WriteQueueLimit || q.LengthInPackets() > c.WriteQueueCountLimit
}

// setBackpressure blocks or unblocks the client-facing input pad to
// match over, the backlog state observed at the start of this drain.
func (c *Connector) setBackpressure(over bool) {
	if over && !c.in.IsBlocked() {
		c.in.Block()
	} else if !over && c.in.IsBlocked() {
		c.in.Unblock()
	}
}

// OutputPadBlocked stops the shunt from scheduling further reads while
// the client isn't draining c.out: an output pad block on a connector
// blocks its shunt's reads in turn.
func (c *Connector) OutputPadBlocked(p *pad.Pad) {
	if c.shunt != nil {
		c.shunt.BlockReads()
	}
}

func (c *Connector) OutputPadUnblocked(p *pad.Pad) {
	if c.shunt != nil {
		c.shunt.UnblockReads()
	}
}

// Close tears down an in-progress or established connection without
// waiting for a client-pushed STREAM_END.
func (c *Connector) Close() {
	if c.shunt != nil {
		c.shunt.Close()
	}
	c.state = Disconnected
	c.shunt = nil
}
