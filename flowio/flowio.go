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

// Package flowio is the synchronous read/write convenience façade over
// the asynchronous pipeline core: it composes a bin of a user-adapter
// and a connector and pumps the dispatch loop until a predicate (data
// arrived / stream closed / error posted) holds, driving the
// UserAdapter and the connector state machine underneath. It is a thin
// convenience layer, not a hardened production API.
package flowio

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nabbar/flow/connector"
	"github.com/nabbar/flow/dispatch"
	"github.com/nabbar/flow/element"
	liberr "github.com/nabbar/flow/errors"
	"github.com/nabbar/flow/event"
	"github.com/nabbar/flow/packet"
	"github.com/nabbar/flow/pad"
	"github.com/nabbar/flow/pqueue"
)

// pumpInterval is how often FlowIO drains the dispatcher's trampoline
// queue while waiting on a predicate: a state-driven loop yielding to
// the runtime between predicate checks.
const pumpInterval = time.Millisecond

// FlowIO wraps a user-adapter/connector pair as a synchronous
// io.ReadWriteCloser. Every call is safe from exactly one goroutine at
// a time, matching the cooperative, single-dispatch-thread ownership
// model the rest of this module uses.
type FlowIO struct {
	ID uuid.UUID

	disp *dispatch.Dispatcher
	ua   *element.UserAdapter
	conn *connector.Connector

	mu       sync.Mutex
	leftover *pqueue.Queue
	closed   bool
	exit     *event.ProcessResult
	pending  liberr.Error
}

// New builds a FlowIO around a fresh Connector using open to create its
// backing shunt on connect, wiring the user-adapter/connector bin both
// ways.
func New(disp *dispatch.Dispatcher, open connector.Opener) *FlowIO {
	if disp == nil {
		disp = dispatch.New()
	}
	c := connector.New(disp, open)
	u := element.NewUserAdapter(disp)

	pad.Connect(u.OutputPad(), c.InputPad())
	pad.Connect(c.OutputPad(), u.InputPad())

	f := &FlowIO{ID: uuid.New(), disp: disp, ua: u, conn: c, leftover: pqueue.New()}
	u.OnArrival(f.drain)
	return f
}

// Connector exposes the underlying connector, e.g. so a caller can
// inspect its State() without going through the façade.
func (f *FlowIO) Connector() *connector.Connector { return f.conn }

// drain is the UserAdapter's arrival callback: it runs on the dispatch
// thread whenever the connector has pushed something new toward the
// client. Buffer packets are appended to the pending byte queue;
// control events update connection/closed/error state.
func (f *FlowIO) drain() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for {
		p := f.ua.Read()
		if p == nil {
			return
		}
		if p.IsBuffer() {
			f.leftover.Push(p)
			continue
		}
		switch o := p.GetData().(type) {
		case *event.DetailedEvent:
			switch {
			case o.Matches(event.DomainStream, event.StreamDenied):
				f.closed = true
				f.pending = errDenied.Error(o)
			case o.Matches(event.DomainStream, event.StreamEnd):
				f.closed = true
			case o.Matches(event.DomainStream, event.StreamAppError):
				f.pending = errAppError.Error(o)
			}
		case *event.ProcessResult:
			f.exit = o
		}
		p.Unref()
	}
}

// Open pushes any connect-operation objects (e.g. *event.IPService,
// *event.FileConnectOp, *event.SshConnectOp) followed by a client-
// initiated STREAM_BEGIN, then pumps the dispatch loop until the
// connector leaves CONNECTING.
func (f *FlowIO) Open(ctx context.Context, ops ...interface{}) liberr.Error {
	for _, o := range ops {
		p := packet.NewTakeObject(o, 0)
		f.ua.Write(p)
	}
	begin, _ := packet.New(packet.FormatObject, event.NewDetailed(event.DomainStream, event.StreamBegin), 0)
	f.ua.Write(begin)

	return f.pumpUntil(ctx, func() bool {
		return f.conn.State() != connector.Connecting
	})
}

// Read copies buffered bytes into p, pumping the dispatch loop until
// data arrives, the stream closes, or ctx is done. A synchronous call
// never returns without either data, an error, or io.EOF.
func (f *FlowIO) Read(ctx context.Context, p []byte) (int, error) {
	for {
		f.mu.Lock()
		if f.leftover.LengthInBytes() > 0 {
			n := f.leftover.PopBytes(p)
			f.mu.Unlock()
			return n, nil
		}
		if f.pending != nil {
			err := f.pending
			f.mu.Unlock()
			return 0, err
		}
		if f.closed {
			f.mu.Unlock()
			return 0, io.EOF
		}
		f.mu.Unlock()

		if err := f.tick(ctx); err != nil {
			return 0, err
		}
	}
}

// Write pushes buf downstream, waiting out any connector-imposed
// backpressure first: a blocked client-facing input pad means the
// connector wants the producer to pause before pushing more.
func (f *FlowIO) Write(ctx context.Context, buf []byte) (int, error) {
	if err := f.pumpUntil(ctx, func() bool {
		return !f.conn.InputPad().IsBlocked()
	}); err != nil {
		return 0, err
	}

	total := 0
	for total < len(buf) {
		n := len(buf) - total
		if n > 1<<16 {
			n = 1 << 16
		}
		pkt, err := packet.New(packet.FormatBuffer, buf[total:total+n], n)
		if err != nil {
			return total, err
		}
		f.ua.Write(pkt)
		total += n
	}
	return total, nil
}

// Flush emits a STREAM_FLUSH request, letting downstream elements
// (e.g. a mux Serializer) know to emit any buffered-but-not-yet-framed
// payload now rather than waiting for the next channel switch.
func (f *FlowIO) Flush() {
	p, _ := packet.New(packet.FormatObject, event.NewDetailed(event.DomainStream, event.StreamFlush), 0)
	f.ua.Write(p)
	f.disp.Pump()
}

// Close pushes a client-initiated STREAM_END and pumps until the
// connector has fully drained back to DISCONNECTED.
func (f *FlowIO) Close(ctx context.Context) liberr.Error {
	end, _ := packet.New(packet.FormatObject, event.NewDetailed(event.DomainStream, event.StreamEnd), 0)
	f.ua.Write(end)
	return f.pumpUntil(ctx, func() bool {
		return f.conn.State() == connector.Disconnected
	})
}

// ExitCode returns the subprocess/SSH-runner exit code delivered by the
// most recent ProcessResult event, and whether one has arrived yet.
func (f *FlowIO) ExitCode() (int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.exit == nil {
		return 0, false
	}
	return f.exit.ExitCode, true
}

// pumpUntil drains the dispatcher's trampoline and re-checks pred until
// it holds, the façade's pending-error slot is populated, or ctx is
// done.
func (f *FlowIO) pumpUntil(ctx context.Context, pred func() bool) liberr.Error {
	for {
		f.mu.Lock()
		done := pred() || f.pending != nil
		err := f.pending
		f.mu.Unlock()
		if done {
			return err
		}
		if tickErr := f.tick(ctx); tickErr != nil {
			return errTimeout.Error(tickErr)
		}
	}
}

func (f *FlowIO) tick(ctx context.Context) error {
	f.disp.Pump()
	if ctx == nil {
		time.Sleep(pumpInterval)
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(pumpInterval):
		return nil
	}
}
