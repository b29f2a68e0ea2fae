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

package sshflow

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/crypto/ssh"

	"github.com/nabbar/flow/dispatch"
	"github.com/nabbar/flow/event"
	"github.com/nabbar/flow/packet"
	"github.com/nabbar/flow/shunt"
)

// ShellShunt runs one command over a shared Master's ssh.Client
// session. Stdout/stderr are delivered as buffer packets as they
// arrive; the final exit status arrives as a ProcessResult object
// packet. Each runner serializes one shell op at a time.
type ShellShunt struct {
	pool     *shunt.Pool
	registry *Registry
	connOp   *event.SshConnectOp
	shellOp  *event.ShellOp
	config   *ssh.ClientConfig

	mu      sync.Mutex
	disp    *dispatch.Dispatcher
	onRead  shunt.ReadFunc
	session *ssh.Session
	stdin   chan *packet.Packet
	closeCh chan struct{}
	closed  bool

	ioBufferSize int
	queueLimit   int
}

func NewShell(pool *shunt.Pool, registry *Registry, connOp *event.SshConnectOp, shellOp *event.ShellOp, config *ssh.ClientConfig) *ShellShunt {
	return &ShellShunt{
		pool:         pool,
		registry:     registry,
		connOp:       connOp,
		shellOp:      shellOp,
		config:       config,
		stdin:        make(chan *packet.Packet, 64),
		closeCh:      make(chan struct{}),
		ioBufferSize: shunt.DefaultIOBufferSize,
		queueLimit:   shunt.DefaultQueueLimit,
	}
}

func (s *ShellShunt) Open(disp *dispatch.Dispatcher, onRead shunt.ReadFunc) {
	s.mu.Lock()
	s.disp = disp
	s.onRead = onRead
	s.mu.Unlock()
	_ = s.pool.Go(context.Background(), s.run)
}

func (s *ShellShunt) deliver(p *packet.Packet) {
	s.mu.Lock()
	disp, onRead := s.disp, s.onRead
	s.mu.Unlock()
	if onRead == nil {
		p.Unref()
		return
	}
	if disp != nil {
		disp.Invoke(func() { onRead(p) })
	} else {
		onRead(p)
	}
}

func (s *ShellShunt) run() {
	master := s.registry.MasterFor(s.connOp, s.config)
	client, err := master.Client(s.connOp)
	if err != nil {
		s.registry.Forget(s.connOp)
		s.deliver(sshDenied(event.SshMasterFailed))
		return
	}

	session, err := client.NewSession()
	if err != nil {
		s.deliver(sshDenied(event.SshMasterNotConnected))
		return
	}
	s.mu.Lock()
	s.session = session
	s.mu.Unlock()
	defer session.Close()

	for k, v := range s.shellOp.Env {
		_ = session.Setenv(k, v)
	}

	stdoutPipe, err := session.StdoutPipe()
	if err != nil {
		s.deliver(sshDenied(event.SshMasterNotConnected))
		return
	}
	stderrPipe, err := session.StderrPipe()
	if err != nil {
		s.deliver(sshDenied(event.SshMasterNotConnected))
		return
	}
	stdinPipe, err := session.StdinPipe()
	if err != nil {
		s.deliver(sshDenied(event.SshMasterNotConnected))
		return
	}

	cmd := s.shellOp.Command
	if len(s.shellOp.Args) > 0 {
		cmd = cmd + " " + strings.Join(s.shellOp.Args, " ")
	}
	if err := session.Start(cmd); err != nil {
		s.deliver(sshDenied(event.SshMasterNotConnected))
		return
	}

	s.deliver(streamEvent(event.StreamBegin))

	var wg sync.WaitGroup
	wg.Add(2)
	go s.pump(stdoutPipe, &wg)
	go s.pump(stderrPipe, &wg)
	go s.feedStdin(stdinPipe)

	wg.Wait()
	err = session.Wait()
	code := 0
	if ee, ok := err.(*ssh.ExitError); ok {
		code = ee.ExitStatus()
	}
	p, _ := packet.New(packet.FormatObject, event.NewProcessResult(code), 0)
	s.deliver(p)
	s.deliver(streamEvent(event.StreamEnd))
}

func (s *ShellShunt) pump(r interface{ Read([]byte) (int, error) }, wg *sync.WaitGroup) {
	defer wg.Done()
	buf := make([]byte, s.ioSize())
	for {
		n, err := r.Read(buf)
		if n > 0 {
			p, _ := packet.New(packet.FormatBuffer, append([]byte(nil), buf[:n]...), n)
			s.deliver(p)
		}
		if err != nil {
			return
		}
	}
}

func (s *ShellShunt) feedStdin(w interface {
	Write([]byte) (int, error)
	Close() error
}) {
	defer w.Close()
	for {
		select {
		case <-s.closeCh:
			return
		case p, ok := <-s.stdin:
			if !ok {
				return
			}
			if p.IsBuffer() {
				w.Write(p.GetData().([]byte))
			}
			p.Unref()
		}
	}
}

func (s *ShellShunt) Submit(p *packet.Packet) {
	select {
	case s.stdin <- p:
	case <-s.closeCh:
		p.Unref()
	}
}

func (s *ShellShunt) BlockReads()   {}
func (s *ShellShunt) UnblockReads() {}
func (s *ShellShunt) BlockWrites()  {}
func (s *ShellShunt) UnblockWrites() {
}

func (s *ShellShunt) SetIOBufferSize(n int) {
	s.mu.Lock()
	s.ioBufferSize = n
	s.mu.Unlock()
}

func (s *ShellShunt) SetQueueLimit(n int) {
	s.mu.Lock()
	s.queueLimit = n
	s.mu.Unlock()
}

func (s *ShellShunt) ioSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ioBufferSize
}

func (s *ShellShunt) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.closeCh)
	session := s.session
	s.mu.Unlock()
	if session != nil {
		session.Close()
	}
}

func streamEvent(c event.Code) *packet.Packet {
	p, _ := packet.New(packet.FormatObject, event.NewDetailed(event.DomainStream, c), 0)
	return p
}

func sshDenied(c event.Code) *packet.Packet {
	ev := event.NewDetailedMulti("ssh stream denied", event.DC(event.DomainStream, event.StreamDenied), event.DC(event.DomainSsh, c))
	p, _ := packet.New(packet.FormatObject, ev, 0)
	return p
}
