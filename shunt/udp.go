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
	"net"

	"github.com/nabbar/flow/dispatch"
	"github.com/nabbar/flow/event"
	"github.com/nabbar/flow/packet"
)

// UDPShunt exchanges whole datagrams rather than a byte stream: each
// inbound packet from the socket becomes exactly one delivered buffer
// packet, bracketed by its own SEGMENT_BEGIN/SEGMENT_END pair (spec
// §4.5 "UDP shunt" — no byte-stream framing applies to datagrams).
type UDPShunt struct {
	base
	pool *Pool
	op   *event.UdpConnectOp
	conn *net.UDPConn
}

func NewUDP(pool *Pool, op *event.UdpConnectOp) *UDPShunt {
	return &UDPShunt{base: newBase(), pool: pool, op: op}
}

func (u *UDPShunt) Open(disp *dispatch.Dispatcher, onRead ReadFunc) {
	u.start(disp, onRead)
	_ = u.pool.Go(context.Background(), u.run)
	_ = u.pool.Go(context.Background(), u.runWrites)
}

func (u *UDPShunt) run() {
	var laddr *net.UDPAddr
	if u.op.Local != nil {
		laddr = &net.UDPAddr{IP: net.ParseIP(u.op.Local.Host), Port: int(u.op.Local.Port)}
	}
	var raddr *net.UDPAddr
	if u.op.Remote != nil {
		raddr = &net.UDPAddr{IP: net.ParseIP(u.op.Remote.Host), Port: int(u.op.Remote.Port)}
	}

	conn, err := net.ListenUDP("udp", laddr)
	if err != nil {
		u.deliver(denied(event.DomainSocket, event.SocketAddressInUse))
		return
	}
	if raddr != nil {
		if c, derr := net.DialUDP("udp", laddr, raddr); derr == nil {
			conn.Close()
			conn = c
		}
	}
	u.conn = conn

	u.deliver(detailed(event.DomainStream, event.StreamBegin))

	buf := make([]byte, u.ioSize()+1)
	for {
		if !u.waitReadsUnblocked() {
			conn.Close()
			return
		}
		limit := len(buf) - 1
		if limit > maxDatagramSize {
			limit = maxDatagramSize
		}
		n, _, err := conn.ReadFromUDP(buf[:limit+1])
		if err != nil {
			u.deliver(detailed(event.DomainStream, event.StreamEnd))
			conn.Close()
			return
		}
		if n > limit {
			u.deliver(denied(event.DomainSocket, event.SocketOversizedPacket))
			continue
		}
		u.deliver(detailed(event.DomainStream, event.StreamSegmentBegin))
		p, _ := packet.New(packet.FormatBuffer, append([]byte(nil), buf[:n]...), n)
		u.deliver(p)
		u.deliver(detailed(event.DomainStream, event.StreamSegmentEnd))
	}
}

// maxDatagramSize bounds a single read; oversized datagrams are
// reported via SocketOversizedPacket instead of being silently
// truncated.
const maxDatagramSize = 65507

func (u *UDPShunt) runWrites() {
	for {
		p, ok := u.nextWrite()
		if !ok {
			if u.writesDrained() {
				u.deliver(detailed(event.DomainStream, event.StreamEnd))
			}
			return
		}
		if u.conn != nil && p.IsBuffer() {
			u.conn.Write(p.GetData().([]byte))
		}
		p.Unref()
	}
}
