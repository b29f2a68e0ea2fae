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

package shunt

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/nabbar/flow/dispatch"
	"github.com/nabbar/flow/event"
	"github.com/nabbar/flow/packet"
)

// FileShunt performs blocking reads and writes against an *os.File on
// a pool worker goroutine. Segment requests, one at a time, are served
// in arrival order; a seek flushes the pending segment.
type FileShunt struct {
	base

	pool *Pool
	path string
	op   *event.FileConnectOp

	mu     sync.Mutex
	file   *os.File
	opened chan struct{}
	seeks  chan event.Position
	segs   chan event.SegmentRequest
}

// NewFile returns a FileShunt that will open op.Path with op's flags
// once Open is called.
func NewFile(pool *Pool, op *event.FileConnectOp) *FileShunt {
	return &FileShunt{
		base:   newBase(),
		pool:   pool,
		path:   op.Path,
		op:     op,
		opened: make(chan struct{}),
		seeks:  make(chan event.Position, 8),
		segs:   make(chan event.SegmentRequest, 8),
	}
}

func (f *FileShunt) Open(disp *dispatch.Dispatcher, onRead ReadFunc) {
	f.start(disp, onRead)
	_ = f.pool.Go(context.Background(), f.run)
	if !f.op.ReadOnly {
		_ = f.pool.Go(context.Background(), f.runWrites)
	}
}

// runWrites drains Submit()'d packets and writes them to the file in
// arrival order, once the underlying file handle is open.
func (f *FileShunt) runWrites() {
	select {
	case <-f.opened:
	case <-f.closeCh:
		return
	}
	f.mu.Lock()
	file := f.file
	f.mu.Unlock()
	if file == nil {
		return
	}
	for {
		p, ok := f.nextWrite()
		if !ok {
			if f.writesDrained() {
				f.deliver(detailed(event.DomainStream, event.StreamEnd))
			}
			return
		}
		if p.IsBuffer() {
			file.Write(p.GetData().([]byte))
		}
		p.Unref()
	}
}

// RequestSegment queues a read of up to n bytes (event.ReadToEOF for
// "until EOF"), bracketed by SEGMENT_BEGIN/SEGMENT_END.
func (f *FileShunt) RequestSegment(n int64) {
	select {
	case f.segs <- event.SegmentRequest{Length: n}:
	case <-f.closeCh:
	}
}

// Seek discards any pending read progress and repositions the file.
func (f *FileShunt) Seek(anchor event.Anchor, offset int64) {
	select {
	case f.seeks <- event.Position{Anchor: anchor, Offset: offset}:
	case <-f.closeCh:
	}
}

func (f *FileShunt) run() {
	flags := os.O_RDONLY
	switch {
	case f.op.Create && f.op.Append:
		flags = os.O_RDWR | os.O_CREATE | os.O_APPEND
	case f.op.Create && f.op.Truncate:
		flags = os.O_RDWR | os.O_CREATE | os.O_TRUNC
	case f.op.Create:
		flags = os.O_RDWR | os.O_CREATE
	case !f.op.ReadOnly:
		flags = os.O_RDWR
	}
	mode := os.FileMode(f.op.Mode)
	if mode == 0 {
		mode = 0644
	}

	file, err := os.OpenFile(f.path, flags, mode)
	if err != nil {
		close(f.opened)
		f.deliver(denied(event.DomainFile, fileOpenErrorCode(err)))
		return
	}
	f.mu.Lock()
	f.file = file
	f.mu.Unlock()
	close(f.opened)

	f.deliver(detailed(event.DomainStream, event.StreamBegin))

	buf := make([]byte, f.ioSize())
	for {
		select {
		case <-f.closeCh:
			file.Close()
			return
		case pos := <-f.seeks:
			whence := io.SeekStart
			switch pos.Anchor {
			case event.AnchorCurrent:
				whence = io.SeekCurrent
			case event.AnchorEnd:
				whence = io.SeekEnd
			}
			file.Seek(pos.Offset, whence)
			for drained := false; !drained; {
				select {
				case <-f.segs:
				default:
					drained = true
				}
			}
			f.deliver(detailed(event.DomainStream, event.StreamBegin))
		case seg := <-f.segs:
			if !f.waitReadsUnblocked() {
				file.Close()
				return
			}
			f.deliver(detailed(event.DomainStream, event.StreamSegmentBegin))
			remaining := seg.Length
			for remaining != 0 {
				want := len(buf)
				if remaining > 0 && int64(want) > remaining {
					want = int(remaining)
				}
				n, rerr := file.Read(buf[:want])
				if n > 0 {
					p, _ := packet.New(packet.FormatBuffer, append([]byte(nil), buf[:n]...), n)
					f.deliver(p)
					if remaining > 0 {
						remaining -= int64(n)
					}
				}
				if rerr != nil {
					break
				}
			}
			f.deliver(detailed(event.DomainStream, event.StreamSegmentEnd))
		}
	}
}

func fileOpenErrorCode(err error) event.Code {
	if os.IsPermission(err) {
		return event.FilePermissionDenied
	}
	if os.IsNotExist(err) {
		return event.FileDoesNotExist
	}
	return event.FileDoesNotExist
}

func detailed(d event.Domain, c event.Code) *packet.Packet {
	p, _ := packet.New(packet.FormatObject, event.NewDetailed(d, c), 0)
	return p
}

func denied(d event.Domain, c event.Code) *packet.Packet {
	ev := event.NewDetailedMulti("stream denied", event.DC(event.DomainStream, event.StreamDenied), event.DC(d, c))
	p, _ := packet.New(packet.FormatObject, ev, 0)
	return p
}
