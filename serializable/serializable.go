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

// Package serializable defines the pluggable byte-layout contract for
// object payloads that must cross the wire as a sequence of packets,
// as a small interface pair rather than runtime reflection.
package serializable

import "github.com/nabbar/flow/packet"

// Producer turns one in-memory object into a sequence of packets.
type Producer interface {
	// Begin returns a fresh context for one serialization pass.
	Begin() interface{}
	// Step returns the next packet to emit, or nil when done.
	Step(ctx interface{}) *packet.Packet
	// End releases any resources held by ctx.
	End(ctx interface{})
}

// Consumer rebuilds one in-memory object from a sequence of packets
// popped off a queue.
type Consumer interface {
	// Begin returns a fresh context for one deserialization pass.
	Begin() interface{}
	// Step consumes as many queued packets as needed and returns the
	// rebuilt object once done is true.
	Step(q PacketSource, ctx interface{}) (done bool, obj interface{})
}

// PacketSource is the minimal read side of a packet queue a Consumer
// needs; it is satisfied by *pqueue.Queue without importing it here,
// keeping serializable free of a dependency on the propagation layer.
type PacketSource interface {
	PopPacket() *packet.Packet
	LengthInPackets() int
}
