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

// Package packet implements the reference-counted envelope that carries
// data and control events through a Flow pipeline. A Packet wraps either
// a contiguous byte buffer or a reference to an out-of-band object (an
// Event), together with an advisory size used for queue accounting.
package packet

import (
	"sync/atomic"

	liberr "github.com/nabbar/flow/errors"
)

// Format distinguishes the two payload kinds a Packet may carry.
type Format uint8

const (
	// FormatBuffer marks a packet whose payload is a contiguous byte slice.
	FormatBuffer Format = iota
	// FormatObject marks a packet whose payload is a reference-counted object (an Event).
	FormatObject
)

// MaxBufferSize is the largest byte buffer a single Packet may carry (2^29-1).
const MaxBufferSize = 1<<29 - 1

// Object is anything that can be carried as the payload of an object-format Packet.
// Event implementations satisfy this; it is kept minimal so packet does not
// import event (event imports packet, not the reverse).
type Object interface{}

// Packet is a reference-counted envelope. The zero value is not usable;
// construct with New or NewTakeObject.
type Packet struct {
	refs   int32
	format Format
	size   int
	buf    []byte
	obj    Object

	// ref guards the carried object's release: shared across a packet
	// and every Copy() taken from it, so the object's cleanup still
	// runs exactly once no matter how many independent packets end up
	// pointing at it. nil for buffer packets and for objects that
	// don't implement releasable.
	ref *objRef
}

// releasable is implemented by object payloads that must run cleanup
// (closing a file descriptor, returning a buffer to a pool, ...) exactly
// once, when the packet's reference count reaches zero.
type releasable interface {
	Release()
}

// objRef is a small retain-counted handle around one releasable
// object's cleanup, shared by a packet and all of its copies. New and
// NewTakeObject each start one at a count of one; Copy retains it
// instead of duplicating the callback, so the wrapped release fires
// once total across every packet sharing it, not once per packet.
type objRef struct {
	n       int32
	release func()
}

func newObjRef(release func()) *objRef {
	return &objRef{n: 1, release: release}
}

func (r *objRef) retain() *objRef {
	atomic.AddInt32(&r.n, 1)
	return r
}

func (r *objRef) unref() {
	if atomic.AddInt32(&r.n, -1) == 0 {
		r.release()
	}
}

// New constructs a buffer packet by copying size bytes from data, or an
// object packet holding data. No additional reference to the object is
// taken: like NewTakeObject, the packet takes over the caller's
// reference, and a releasable object has Release called once the last
// packet sharing it is dropped. Reference count starts at 1.
func New(format Format, data interface{}, size int) (*Packet, liberr.Error) {
	switch format {
	case FormatBuffer:
		b, ok := data.([]byte)
		if !ok {
			return nil, errInvalidArgs.Error(nil)
		}
		if size < 0 || size > MaxBufferSize {
			return nil, errOversize.Error(nil)
		}
		if size > len(b) {
			size = len(b)
		}
		buf := make([]byte, size)
		copy(buf, b[:size])
		return &Packet{refs: 1, format: FormatBuffer, size: size, buf: buf}, nil
	case FormatObject:
		p := &Packet{refs: 1, format: FormatObject, size: size, obj: data}
		if r, ok := data.(releasable); ok {
			p.ref = newObjRef(r.Release)
		}
		return p, nil
	default:
		return nil, errInvalidArgs.Error(nil)
	}
}

// NewTakeObject constructs an object packet that steals the caller's
// reference to obj: no additional retain is performed, and the single
// reference the packet holds is the one the caller used to own.
func NewTakeObject(obj Object, sizeHint int) *Packet {
	p := &Packet{refs: 1, format: FormatObject, size: sizeHint, obj: obj}
	if r, ok := obj.(releasable); ok {
		p.ref = newObjRef(r.Release)
	}
	return p
}

// Ref increments the reference count and returns the same packet, mirroring
// the C convention of ref-returns-self used throughout the original library.
func (p *Packet) Ref() *Packet {
	atomic.AddInt32(&p.refs, 1)
	return p
}

// Unref decrements the reference count. The last Unref releases the
// referenced object (if any and if releasable) exactly once, then frees
// the packet's storage.
func (p *Packet) Unref() {
	if p == nil {
		return
	}
	if atomic.AddInt32(&p.refs, -1) == 0 {
		if p.ref != nil {
			p.ref.unref()
		}
		p.buf = nil
		p.obj = nil
	}
}

// RefCount returns the current reference count, for tests and diagnostics.
func (p *Packet) RefCount() int32 {
	return atomic.LoadInt32(&p.refs)
}

// Copy returns a new packet with its own reference count of 1: a deep
// copy of the buffer for buffer packets, or a new reference to the same
// object for object packets. The copy shares the original's objRef, so
// the two packets' independent Unref-to-zero sequences still only run
// the object's release once between them.
func (p *Packet) Copy() *Packet {
	switch p.format {
	case FormatBuffer:
		buf := make([]byte, len(p.buf))
		copy(buf, p.buf)
		return &Packet{refs: 1, format: FormatBuffer, size: p.size, buf: buf}
	default:
		var ref *objRef
		if p.ref != nil {
			ref = p.ref.retain()
		}
		return &Packet{refs: 1, format: FormatObject, size: p.size, obj: p.obj, ref: ref}
	}
}

// GetFormat returns the packet's immutable format.
func (p *Packet) GetFormat() Format {
	return p.format
}

// GetSize returns the packet's immutable size: the buffer length for
// buffer packets, or the advisory memory-cost hint for object packets.
func (p *Packet) GetSize() int {
	return p.size
}

// GetData returns an internal view of the payload: the byte slice for
// buffer packets (caller must not retain or mutate it beyond the
// packet's lifetime) or the referenced object for object packets.
func (p *Packet) GetData() interface{} {
	if p.format == FormatBuffer {
		return p.buf
	}
	return p.obj
}

// IsBuffer reports whether this packet carries a byte buffer.
func (p *Packet) IsBuffer() bool {
	return p.format == FormatBuffer
}

// IsObject reports whether this packet carries an object reference.
func (p *Packet) IsObject() bool {
	return p.format == FormatObject
}
