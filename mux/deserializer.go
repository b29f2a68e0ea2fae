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

// Deserializer is the inverse of Serializer: it reads a raw byte
// stream, and for each header it parses emits an event.MuxEvent
// followed by exactly that many bytes of payload, splitting a straddling
// final packet across the channel boundary. Any stream-domain event
// packet interleaved in the input (the serializer never encodes these
// as bytes) is passed through untouched before the next header.
type Deserializer struct {
	in  *pad.Pad
	out *pad.Pad

	ops      HeaderOps
	residual uint32 // bytes of current channel's payload still to forward
}

func NewDeserializer(disp *dispatch.Dispatcher) *Deserializer {
	return NewDeserializerWithOps(disp, DefaultHeaderOps{})
}

func NewDeserializerWithOps(disp *dispatch.Dispatcher, ops HeaderOps) *Deserializer {
	d := &Deserializer{ops: ops}
	d.in = pad.NewInput(d, disp)
	d.out = pad.NewOutput(d, disp)
	return d
}

func (d *Deserializer) InputPad() *pad.Pad  { return d.in }
func (d *Deserializer) OutputPad() *pad.Pad { return d.out }

func (d *Deserializer) InputPads() []*pad.Pad  { return []*pad.Pad{d.in} }
func (d *Deserializer) OutputPads() []*pad.Pad { return []*pad.Pad{d.out} }

func (d *Deserializer) OutputPadBlocked(p *pad.Pad)   {}
func (d *Deserializer) OutputPadUnblocked(p *pad.Pad) {}

func (d *Deserializer) HandleUniversalEvent(e *event.PropertyEvent) {}

func (d *Deserializer) ProcessInput(p *pad.Pad) {
	for !d.out.IsBlocked() {
		if d.residual == 0 {
			if head, _, ok := p.Queue().PeekHead(); ok && head.IsObject() {
				d.out.Push(p.Queue().PopPacket())
				continue
			}

			headerLen := d.ops.Size()
			raw := make([]byte, headerLen)
			if !p.Queue().PopBytesExact(raw) {
				return
			}
			h, err := d.ops.Parse(raw)
			if err != nil {
				return
			}
			mp := packet.NewTakeObject(event.NewMux(uint(h.Channel)), 0)
			d.out.Push(mp)
			d.residual = h.Size
			if d.residual == 0 {
				continue
			}
		}

		want := d.residual
		if want > 1<<16 {
			want = 1 << 16
		}
		dest := make([]byte, int(want))
		n := p.Queue().PopBytes(dest)
		if n == 0 {
			return
		}
		pkt, _ := packet.New(packet.FormatBuffer, dest[:n], n)
		d.out.Push(pkt)
		d.residual -= uint32(n)
	}
}
