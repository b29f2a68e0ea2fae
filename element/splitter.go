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

// DefaultSplitterBufferLimit bounds the bytes of replicated data a
// Splitter retains per output while that output is blocked, before it
// starts dropping for that output only.
const DefaultSplitterBufferLimit = 1 << 20

// Splitter has one input and any number of dynamically added outputs;
// every packet received on the input is delivered to every output.
// While an output pad is blocked, packets destined for it accumulate
// against BufferLimit; once exceeded, that output starts dropping
// packets so the other outputs keep streaming, favoring the faster
// outputs over the slowest.
type Splitter struct {
	base
	in          *pad.Pad
	outputs     []*pad.Pad
	BufferLimit int
	held        map[*pad.Pad]int // bytes queued-but-undelivered per blocked output
}

func NewSplitter(disp *dispatch.Dispatcher) *Splitter {
	s := &Splitter{
		base:        base{disp: disp, kind: "splitter"},
		BufferLimit: DefaultSplitterBufferLimit,
		held:        make(map[*pad.Pad]int),
	}
	s.in = pad.NewInput(s, disp)
	return s
}

func (s *Splitter) InputPad() *pad.Pad { return s.in }

// AddOutput creates and returns a new output pad.
func (s *Splitter) AddOutput() *pad.Pad {
	out := pad.NewOutput(s, s.disp)
	s.outputs = append(s.outputs, out)
	return out
}

func (s *Splitter) InputPads() []*pad.Pad  { return []*pad.Pad{s.in} }
func (s *Splitter) OutputPads() []*pad.Pad { return append([]*pad.Pad(nil), s.outputs...) }

// ProcessInput replicates every packet on p to every output pad. A
// blocked output counts the bytes it is handed; once a packet would take
// that count past BufferLimit, that output skips the packet while the
// other outputs still receive it. A packet no output takes is released.
func (s *Splitter) ProcessInput(p *pad.Pad) {
	for {
		pkt := p.Queue().PopPacket()
		if pkt == nil {
			return
		}
		size := pkt.GetSize()

		eligible := make([]*pad.Pad, 0, len(s.outputs))
		for _, out := range s.outputs {
			if out.IsBlocked() && s.held[out]+size > s.BufferLimit {
				continue
			}
			if out.IsBlocked() {
				s.held[out] += size
			}
			eligible = append(eligible, out)
		}

		if len(eligible) == 0 {
			pkt.Unref()
			continue
		}
		for _, out := range eligible[:len(eligible)-1] {
			out.Push(pkt.Copy())
		}
		eligible[len(eligible)-1].Push(pkt)
	}
}

// OutputPadUnblocked clears the held-bytes counter for out, since its
// queue is presumed to be draining again.
func (s *Splitter) OutputPadUnblocked(p *pad.Pad) {
	delete(s.held, p)
}
