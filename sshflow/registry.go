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

// Package sshflow implements the SSH master/runner pair of the SSH
// shunt flavor: one shared *ssh.Client per (host, user, port), and one
// shunt per command run against it. A process-wide singleton keyed by
// connection identity is re-used by every runner targeting the same
// host; a runner waits for its master to finish connecting, then asks
// it to start a command.
package sshflow

import (
	"fmt"
	"net"
	"sync"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/nabbar/flow/event"
)

// Master owns one ssh.Client shared by every runner targeting the same
// (host, user, port). Dialing happens once, lazily, the first time a caller
// asks for the client; concurrent callers during the dial all wait on
// the same attempt.
type Master struct {
	mu      sync.Mutex
	client  *ssh.Client
	dialErr error
	dialed  bool
	cond    *sync.Cond

	host    string
	user    string
	config  *ssh.ClientConfig
	timeout time.Duration
}

func newMaster(op *event.SshConnectOp, config *ssh.ClientConfig) *Master {
	m := &Master{host: op.Host, user: op.RemoteUser, config: config, timeout: op.Timeout}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// Client blocks until the master's client is dialed (by this call or a
// concurrent one) and returns it, or the dial error every waiter sees.
func (m *Master) Client(op *event.SshConnectOp) (*ssh.Client, error) {
	m.mu.Lock()
	if m.dialed {
		defer m.mu.Unlock()
		return m.client, m.dialErr
	}
	if m.dialErr == errDialing {
		for !m.dialed {
			m.cond.Wait()
		}
		defer m.mu.Unlock()
		return m.client, m.dialErr
	}

	// Claim the dial attempt so concurrent callers wait instead of
	// redialing.
	m.dialErr = errDialing
	m.mu.Unlock()

	addr := net.JoinHostPort(op.Host, portOf(op.Port))
	dialTimeout := op.Timeout
	if dialTimeout == 0 {
		dialTimeout = 30 * time.Second
	}
	conn, err := net.DialTimeout("tcp", addr, dialTimeout)

	m.mu.Lock()
	if err != nil {
		m.client, m.dialErr, m.dialed = nil, fmt.Errorf("ssh: dial %s: %w", addr, err), true
		m.cond.Broadcast()
		m.mu.Unlock()
		return nil, m.dialErr
	}

	cconn, chans, reqs, err := ssh.NewClientConn(conn, addr, m.config)
	if err != nil {
		m.client, m.dialErr, m.dialed = nil, fmt.Errorf("ssh: handshake %s: %w", addr, err), true
		m.cond.Broadcast()
		m.mu.Unlock()
		return nil, m.dialErr
	}

	m.client = ssh.NewClient(cconn, chans, reqs)
	m.dialErr = nil
	m.dialed = true
	m.cond.Broadcast()
	m.mu.Unlock()
	return m.client, nil
}

var errDialing = fmt.Errorf("ssh: dial in progress")

func portOf(p uint16) string {
	if p == 0 {
		p = 22
	}
	return fmt.Sprintf("%d", p)
}

// Registry is the process-wide FlowSshMasterRegistry equivalent: it
// hands out one Master per distinct (host, user, port), re-using it across
// every SshConnectOp that names the same endpoint.
type Registry struct {
	mu      sync.Mutex
	masters map[string]*Master
}

func NewRegistry() *Registry {
	return &Registry{masters: make(map[string]*Master)}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry singleton, mirroring
// flow_ssh_master_registry_get_default.
func Default() *Registry { return defaultRegistry }

func key(op *event.SshConnectOp) string {
	return op.Host + "\x00" + op.RemoteUser + "\x00" + portOf(op.Port)
}

// MasterFor returns the shared Master for op's endpoint, creating one
// if this is the first request for it.
func (r *Registry) MasterFor(op *event.SshConnectOp, config *ssh.ClientConfig) *Master {
	k := key(op)
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.masters[k]; ok {
		return m
	}
	m := newMaster(op, config)
	r.masters[k] = m
	return m
}

// Forget drops a master from the registry, e.g. after its client has
// failed and every pending runner has been notified of the fan-out.
func (r *Registry) Forget(op *event.SshConnectOp) {
	r.mu.Lock()
	delete(r.masters, key(op))
	r.mu.Unlock()
}
