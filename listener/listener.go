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

// Package listener implements the TCP accept-loop element: a
// net.Listener runs on a worker-pool goroutine, and every accepted
// connection is wrapped in a pre-connected Connector and handed to
// the client's OnAccept callback on the dispatch thread.
package listener

import (
	"context"
	"net"

	"golang.org/x/sync/errgroup"

	"github.com/nabbar/flow/connector"
	"github.com/nabbar/flow/dispatch"
	"github.com/nabbar/flow/shunt"
)

// AcceptFunc is invoked on the dispatch thread for every accepted
// connection, already wrapped as a Connector in the CONNECTED state.
type AcceptFunc func(c *connector.Connector)

// Listener runs net.Listener.Accept in a loop on a pool worker,
// stopping cleanly on Close.
type Listener struct {
	pool *shunt.Pool
	disp *dispatch.Dispatcher

	network string
	address string

	ln       net.Listener
	onAccept AcceptFunc
	closeCh  chan struct{}

	eg *errgroup.Group
}

func New(pool *shunt.Pool, disp *dispatch.Dispatcher, network, address string) *Listener {
	return &Listener{pool: pool, disp: disp, network: network, address: address, closeCh: make(chan struct{}), eg: &errgroup.Group{}}
}

// Addr returns the bound address once Open has succeeded.
func (l *Listener) Addr() net.Addr {
	if l.ln == nil {
		return nil
	}
	return l.ln.Addr()
}

// Open binds the listener and starts the accept loop. onAccept is
// called once per accepted connection, on the dispatch thread.
func (l *Listener) Open(onAccept AcceptFunc) error {
	ln, err := net.Listen(l.network, l.address)
	if err != nil {
		return err
	}
	l.ln = ln
	l.onAccept = onAccept
	l.eg.Go(func() error {
		return l.pool.Run(context.Background(), l.run)
	})
	return nil
}

// Wait blocks until the accept loop started by Open has returned,
// which happens once Close has torn down the listening socket. It
// lets a caller await a clean shutdown instead of racing Close
// against the loop's last in-flight Accept.
func (l *Listener) Wait() error {
	return l.eg.Wait()
}

func (l *Listener) run() {
	for {
		conn, err := l.ln.Accept()
		if err != nil {
			select {
			case <-l.closeCh:
				return
			default:
				return
			}
		}

		c := connector.New(l.disp, nil)
		s := shunt.NewTCPAccepted(l.pool, conn)
		l.disp.Invoke(func() {
			c.AttachAccepted(s)
			if l.onAccept != nil {
				l.onAccept(c)
			}
		})
	}
}

func (l *Listener) Close() error {
	select {
	case <-l.closeCh:
	default:
		close(l.closeCh)
	}
	if l.ln != nil {
		return l.ln.Close()
	}
	return nil
}
