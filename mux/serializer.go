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

package mux

import (
	"github.com/nabbar/flow/dispatch"
	"github.com/nabbar/flow/event"
	"github.com/nabbar/flow/packet"
	"github.com/nabbar/flow/pad"
)

// Serializer accepts event.MuxEvent(channel) markers followed by buffer
// packets addressed to that channel, and emits a single interleaved
// byte stream: one header per channel switch (or STREAM_END /
// STREAM_FLUSH) followed by that channel's buffered payload. It is a
// simplex element but implements pad.Owner directly (not via
// element.Simplex's default pass-through ProcessInput) since it
// must interpret rather than forward its input.
type Serializer struct {
	in  *pad.Pad
	out *pad.Pad

	ops     HeaderOps
	channel uint16
	hasChan bool
	pending []*packet.Packet
	pendLen int
}

// NewSerializer returns a Serializer using the default 6-byte header.
func NewSerializer(disp *dispatch.Dispatcher) *Serializer {
	return NewSerializerWithOps(disp, DefaultHeaderOps{})
}

// NewSerializerWithOps returns a Serializer using a caller-supplied
// HeaderOps (e.g. CBORHeaderOps).
func NewSerializerWithOps(disp *dispatch.Dispatcher, ops HeaderOps) *Serializer {
	s := &Serializer{ops: ops}
	s.in = pad.NewInput(s, disp)
	s.out = pad.NewOutput(s, disp)
	return s
}

func (s *Serializer) InputPad() *pad.Pad  { return s.in }
func (s *Serializer) OutputPad() *pad.Pad { return s.out }

func (s *Serializer) InputPads() []*pad.Pad  { return []*pad.Pad{s.in} }
func (s *Serializer) OutputPads() []*pad.Pad { return []*pad.Pad{s.out} }

func (s *Serializer) OutputPadBlocked(p *pad.Pad)   {}
func (s *Serializer) OutputPadUnblocked(p *pad.Pad) {}

func (s *Serializer) HandleUniversalEvent(e *event.PropertyEvent) {}

func (s *Serializer) ProcessInput(p *pad.Pad) {
	for {
		pkt := p.Queue().PopPacket()
		if pkt == nil {
			return
		}

		if pkt.IsObject() {
			switch v := pkt.GetData().(type) {
			case *event.MuxEvent:
				s.flush()
				s.channel = uint16(v.Channel)
				s.hasChan = true
			case *event.DetailedEvent:
				if v.MatchesDomain(event.DomainStream) {
					s.flush()
					s.OutputPad().Push(pkt)
					continue
				}
			}
			pkt.Unref()
			continue
		}

		s.pending = append(s.pending, pkt)
		s.pendLen += pkt.GetSize()
	}
}

// flush emits the header for the current channel (if any data is
// pending) followed by the buffered payload packets, in order.
func (s *Serializer) flush() {
	if !s.hasChan || len(s.pending) == 0 {
		s.releasePending()
		return
	}

	header := s.ops.Unparse(Header{Channel: s.channel, Size: uint32(s.pendLen)})
	hp, _ := packet.New(packet.FormatBuffer, header, len(header))
	s.OutputPad().Push(hp)

	for _, pkt := range s.pending {
		s.OutputPad().Push(pkt)
	}
	s.pending = nil
	s.pendLen = 0
}

func (s *Serializer) releasePending() {
	for _, pkt := range s.pending {
		pkt.Unref()
	}
	s.pending = nil
	s.pendLen = 0
}
