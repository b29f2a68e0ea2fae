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

package element

import (
	"github.com/nabbar/flow/dispatch"
	"github.com/nabbar/flow/pad"
)

// Duplex models a protocol boundary such as TLS: two pads facing the
// client (upstream) and two facing the wire (downstream). The
// zero-value ProcessInput pumps upstream-input straight to
// downstream-output and downstream-input straight to upstream-output,
// i.e. a pass-through; real protocol layers embed Duplex and override
// ProcessInput.
type Duplex struct {
	base
	upstreamIn    *pad.Pad
	upstreamOut   *pad.Pad
	downstreamIn  *pad.Pad
	downstreamOut *pad.Pad
}

func NewDuplex(disp *dispatch.Dispatcher) *Duplex {
	d := &Duplex{base: base{disp: disp, kind: "duplex"}}
	d.upstreamIn = pad.NewInput(d, disp)
	d.upstreamOut = pad.NewOutput(d, disp)
	d.downstreamIn = pad.NewInput(d, disp)
	d.downstreamOut = pad.NewOutput(d, disp)
	return d
}

func (d *Duplex) UpstreamInputPad() *pad.Pad    { return d.upstreamIn }
func (d *Duplex) UpstreamOutputPad() *pad.Pad   { return d.upstreamOut }
func (d *Duplex) DownstreamInputPad() *pad.Pad  { return d.downstreamIn }
func (d *Duplex) DownstreamOutputPad() *pad.Pad { return d.downstreamOut }

func (d *Duplex) InputPads() []*pad.Pad  { return []*pad.Pad{d.upstreamIn, d.downstreamIn} }
func (d *Duplex) OutputPads() []*pad.Pad { return []*pad.Pad{d.upstreamOut, d.downstreamOut} }

// ProcessInput forwards packets across the duplex boundary: data
// arriving upstream goes out to the wire, and data arriving from the
// wire goes out upstream to the client.
func (d *Duplex) ProcessInput(p *pad.Pad) {
	var out *pad.Pad
	switch p {
	case d.upstreamIn:
		out = d.downstreamOut
	case d.downstreamIn:
		out = d.upstreamOut
	default:
		return
	}
	for !out.IsBlocked() {
		pkt := p.Queue().PopPacket()
		if pkt == nil {
			return
		}
		out.Push(pkt)
	}
}
