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

// Package element implements the node shapes of the pipeline graph —
// simplex, duplex, splitter, joiner, and the client-facing user-adapter.
// All variants satisfy pad.Owner and drive their pads through a shared
// dispatch.Dispatcher.
package element

import (
	ctxcfg "github.com/nabbar/flow/context"
	"github.com/nabbar/flow/dispatch"
	"github.com/nabbar/flow/event"
	"github.com/nabbar/flow/pad"
)

// Element is satisfied by every node in the pipeline graph. InputPads
// and OutputPads expose the fixed or dynamically-added pad set so the
// util helpers and connectors can enumerate them generically; they
// carry no additional semantics of their own.
type Element interface {
	pad.Owner
	InputPads() []*pad.Pad
	OutputPads() []*pad.Pad
	// HandleUniversalEvent delivers a property event addressed to this
	// element regardless of its position in the stream.
	HandleUniversalEvent(e *event.PropertyEvent)
}

// base provides the pad.Owner default no-ops and dispatcher plumbing
// shared by every element variant, mirroring how FlowElement supplies
// default output_pad_blocked/unblocked handlers in the original C core.
// It also holds the weak identity and applied-property store every
// variant needs to answer a PropertyEvent broadcast.
type base struct {
	disp *dispatch.Dispatcher
	kind string
	id   event.Source

	props ctxcfg.Config[string]
}

// Kind names the element variant for PropertyTarget.Matches, e.g.
// "simplex" or "splitter".
func (b *base) Kind() string { return b.kind }

// SetID assigns this element's weak back-reference, so a PropertyEvent
// targeted at one specific instance can find it.
func (b *base) SetID(id event.Source) { b.id = id }

func (b *base) ID() event.Source { return b.id }

// Properties returns the element's applied-property store, creating it
// lazily so elements that never receive a PropertyEvent pay nothing.
func (b *base) Properties() ctxcfg.Config[string] {
	if b.props == nil {
		b.props = ctxcfg.New[string](nil)
	}
	return b.props
}

func (b *base) OutputPadBlocked(p *pad.Pad)   {}
func (b *base) OutputPadUnblocked(p *pad.Pad) {}

// HandleUniversalEvent applies every property in e whose target matches
// this element's kind or identity, storing it for later retrieval via
// Properties().Load. It does not pass the event on to any other
// element; each element receives it only through its own call.
func (b *base) HandleUniversalEvent(e *event.PropertyEvent) {
	if e == nil || !e.Target.Matches(b.kind, b.id) {
		return
	}
	store := b.Properties()
	for _, p := range e.Properties {
		store.Store(p.Name, p.Value)
	}
}
