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

// Joiner has dynamically added inputs and one output. It merges all
// inputs FIFO round-robin with no ordering guarantee across inputs.
type Joiner struct {
	base
	inputs []*pad.Pad
	out    *pad.Pad
	next   int
}

func NewJoiner(disp *dispatch.Dispatcher) *Joiner {
	j := &Joiner{base: base{disp: disp, kind: "joiner"}}
	j.out = pad.NewOutput(j, disp)
	return j
}

func (j *Joiner) OutputPad() *pad.Pad { return j.out }

// AddInput creates and returns a new input pad.
func (j *Joiner) AddInput() *pad.Pad {
	in := pad.NewInput(j, j.disp)
	j.inputs = append(j.inputs, in)
	return in
}

func (j *Joiner) InputPads() []*pad.Pad  { return append([]*pad.Pad(nil), j.inputs...) }
func (j *Joiner) OutputPads() []*pad.Pad { return []*pad.Pad{j.out} }

// ProcessInput drains p (the input pad that just received data) to the
// output. On every call it also sweeps the remaining inputs
// round-robin, starting just past the last one serviced, so that a
// quiet input's late notification does not starve its neighbours.
func (j *Joiner) ProcessInput(p *pad.Pad) {
	if j.out.IsBlocked() {
		return
	}
	j.drain(p)

	n := len(j.inputs)
	for i := 0; i < n && !j.out.IsBlocked(); i++ {
		idx := (j.next + i) % n
		in := j.inputs[idx]
		if in == p {
			continue
		}
		j.drain(in)
	}
	if n > 0 {
		j.next = (j.next + 1) % n
	}
}

func (j *Joiner) drain(in *pad.Pad) {
	for !j.out.IsBlocked() {
		pkt := in.Queue().PopPacket()
		if pkt == nil {
			return
		}
		j.out.Push(pkt)
	}
}
