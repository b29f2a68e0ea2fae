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

// Simplex has exactly one input pad and one output pad. Its default
// ProcessInput drains the input queue and forwards every packet
// unchanged to the output pad. Embedders override
// ProcessInput to transform packets in transit.
type Simplex struct {
	base
	in  *pad.Pad
	out *pad.Pad
}

// NewSimplex returns a Simplex wired to disp, with both pads unconnected.
func NewSimplex(disp *dispatch.Dispatcher) *Simplex {
	s := &Simplex{base: base{disp: disp, kind: "simplex"}}
	s.in = pad.NewInput(s, disp)
	s.out = pad.NewOutput(s, disp)
	return s
}

func (s *Simplex) InputPad() *pad.Pad  { return s.in }
func (s *Simplex) OutputPad() *pad.Pad { return s.out }

func (s *Simplex) InputPads() []*pad.Pad  { return []*pad.Pad{s.in} }
func (s *Simplex) OutputPads() []*pad.Pad { return []*pad.Pad{s.out} }

// ProcessInput forwards every packet currently queued on p to the
// output pad, stopping early if the output pad is blocked.
func (s *Simplex) ProcessInput(p *pad.Pad) {
	for !s.out.IsBlocked() {
		pkt := p.Queue().PopPacket()
		if pkt == nil {
			return
		}
		s.out.Push(pkt)
	}
}
