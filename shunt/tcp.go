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

// TCPClientShunt connects out to a remote host asynchronously, then
// exchanges an implicit single open segment of bytes: reads produce
// SEGMENT_BEGIN once, right after STREAM_BEGIN, and SEGMENT_END only
// when the peer closes.
type TCPClientShunt struct {
	base
	pool    *Pool
	op      *event.UdpConnectOp // reused shape: Local/Remote *IPService
	network string
	conn    net.Conn
}

func NewTCPClient(pool *Pool, remoteHost string, remotePort uint16) *TCPClientShunt {
	return &TCPClientShunt{
		base:    newBase(),
		pool:    pool,
		network: "tcp",
		op:      &event.UdpConnectOp{Remote: event.NewIPService(remoteHost, remotePort)},
	}
}

// NewTCPAccepted wraps an already-accepted connection (spec's "TCP
// accepted" flavor) — no dial phase, STREAM_BEGIN fires immediately.
func NewTCPAccepted(pool *Pool, conn net.Conn) *TCPClientShunt {
	return &TCPClientShunt{base: newBase(), pool: pool, conn: conn}
}

func (t *TCPClientShunt) Open(disp *dispatch.Dispatcher, onRead ReadFunc) {
	t.start(disp, onRead)
	_ = t.pool.Go(context.Background(), t.run)
	_ = t.pool.Go(context.Background(), t.runWrites)
}

func (t *TCPClientShunt) run() {
	if t.conn == nil {
		addr := net.JoinHostPort(t.op.Remote.Host, portStr(t.op.Remote.Port))
		conn, err := net.Dial(t.network, addr)
		if err != nil {
			t.deliver(denied(event.DomainSocket, tcpErrorCode(err)))
			return
		}
		t.conn = conn
	}

	t.deliver(detailed(event.DomainStream, event.StreamBegin))
	t.deliver(detailed(event.DomainStream, event.StreamSegmentBegin))

	buf := make([]byte, t.ioSize())
	for {
		if !t.waitReadsUnblocked() {
			t.conn.Close()
			return
		}
		n, err := t.conn.Read(buf)
		if n > 0 {
			p, _ := packet.New(packet.FormatBuffer, append([]byte(nil), buf[:n]...), n)
			t.deliver(p)
		}
		if err != nil {
			t.deliver(detailed(event.DomainStream, event.StreamSegmentEnd))
			t.deliver(detailed(event.DomainStream, event.StreamEnd))
			t.conn.Close()
			return
		}
	}
}

func (t *TCPClientShunt) runWrites() {
	for {
		p, ok := t.nextWrite()
		if !ok {
			if t.writesDrained() {
				t.deliver(detailed(event.DomainStream, event.StreamEnd))
			}
			return
		}
		if t.conn != nil && p.IsBuffer() {
			t.conn.Write(p.GetData().([]byte))
		}
		p.Unref()
	}
}

func tcpErrorCode(err error) event.Code {
	if ne, ok := err.(*net.OpError); ok {
		if ne.Timeout() {
			return event.SocketNetworkUnreachable
		}
	}
	return event.SocketConnectionRefused
}

func portStr(p uint16) string {
	return net.JoinHostPort("", itoa(int(p)))[1:]
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
