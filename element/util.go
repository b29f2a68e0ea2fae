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

import "github.com/nabbar/flow/pad"

// ConnectSimplex wires output's output pad to input's input pad. A nil
// argument disconnects the other side instead of connecting it, so
// callers can use this uniformly to splice or unsplice a stage.
func ConnectSimplex(output, input *Simplex) {
	switch {
	case output != nil && input != nil:
		pad.Connect(output.OutputPad(), input.InputPad())
	case output != nil:
		pad.Disconnect(output.OutputPad())
	case input != nil:
		pad.Disconnect(input.InputPad())
	}
}

// ConnectDuplex wires downstream's upstream-facing pads to upstream's
// downstream-facing pads, i.e. chains two protocol layers.
func ConnectDuplex(downstream, upstream *Duplex) {
	switch {
	case downstream != nil && upstream != nil:
		pad.Connect(downstream.UpstreamInputPad(), upstream.DownstreamOutputPad())
		pad.Connect(downstream.UpstreamOutputPad(), upstream.DownstreamInputPad())
	case downstream != nil:
		pad.Disconnect(downstream.UpstreamInputPad())
		pad.Disconnect(downstream.UpstreamOutputPad())
	case upstream != nil:
		pad.Disconnect(upstream.DownstreamInputPad())
		pad.Disconnect(upstream.DownstreamOutputPad())
	}
}

// InsertSimplex splices inserted between input and whatever input's
// input pad was previously connected to.
func InsertSimplex(inserted, input *Simplex) {
	upstream := input.InputPad().Peer()
	if upstream != nil {
		pad.Connect(upstream, inserted.InputPad())
	} else {
		pad.Disconnect(inserted.InputPad())
	}
	ConnectSimplex(inserted, input)
}

// DisconnectElement severs every pad belonging to e, both input and output.
func DisconnectElement(e Element) {
	for _, p := range e.InputPads() {
		pad.Disconnect(p)
	}
	for _, p := range e.OutputPads() {
		pad.Disconnect(p)
	}
}

// ReplaceElement substitutes replacement for original in the graph:
// for every pad of original, replacement's corresponding pad (matched
// by index and direction) takes over whatever original was connected
// to. original and replacement must have the same pad counts; mismatch
// is a silent no-op, mirroring the original C implementation's warning
// path where the caller is expected to have checked compatibility.
func ReplaceElement(original, replacement Element) {
	oi, ri := original.InputPads(), replacement.InputPads()
	oo, ro := original.OutputPads(), replacement.OutputPads()
	if len(oi) != len(ri) || len(oo) != len(ro) {
		return
	}
	for i := range oo {
		if peer := oo[i].Peer(); peer != nil {
			pad.Connect(ro[i], peer)
		} else {
			pad.Disconnect(ro[i])
		}
	}
	for i := range oi {
		if peer := oi[i].Peer(); peer != nil {
			pad.Connect(ri[i], peer)
		} else {
			pad.Disconnect(ri[i])
		}
	}
}
