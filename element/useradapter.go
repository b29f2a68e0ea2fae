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
	"sync"

	"github.com/nabbar/flow/dispatch"
	"github.com/nabbar/flow/packet"
	"github.com/nabbar/flow/pad"
)

// UserAdapter is a leaf element whose input queue is readable and
// whose output queue is writable by client code outside the pipeline.
// It is the building block behind the flowio blocking
// façade: ProcessInput simply invokes a notification callback so the
// client knows new data is waiting.
type UserAdapter struct {
	base
	in  *pad.Pad
	out *pad.Pad

	mu       sync.Mutex
	onArrive func()
}

func NewUserAdapter(disp *dispatch.Dispatcher) *UserAdapter {
	u := &UserAdapter{base: base{disp: disp, kind: "user-adapter"}}
	u.in = pad.NewInput(u, disp)
	u.out = pad.NewOutput(u, disp)
	return u
}

func (u *UserAdapter) InputPad() *pad.Pad  { return u.in }
func (u *UserAdapter) OutputPad() *pad.Pad { return u.out }

func (u *UserAdapter) InputPads() []*pad.Pad  { return []*pad.Pad{u.in} }
func (u *UserAdapter) OutputPads() []*pad.Pad { return []*pad.Pad{u.out} }

// OnArrival registers the callback invoked whenever ProcessInput runs,
// i.e. whenever new data has arrived on the input pad.
func (u *UserAdapter) OnArrival(fn func()) {
	u.mu.Lock()
	u.onArrive = fn
	u.mu.Unlock()
}

func (u *UserAdapter) ProcessInput(p *pad.Pad) {
	u.mu.Lock()
	fn := u.onArrive
	u.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Read pops one packet the pipeline has delivered, or nil if none is queued.
func (u *UserAdapter) Read() *packet.Packet {
	return u.in.Queue().PopPacket()
}

// Write pushes a client-produced packet downstream.
func (u *UserAdapter) Write(p *packet.Packet) {
	u.out.Push(p)
}
