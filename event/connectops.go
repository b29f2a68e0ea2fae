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

package event

import "time"

// FileConnectOp opens a file shunt at Path with the given flags.
type FileConnectOp struct {
	base
	Path     string
	ReadOnly bool
	Create   bool
	Append   bool
	Truncate bool
	Mode     uint32
}

func (e *FileConnectOp) Kind() string { return "file-connect-op" }

// UdpConnectOp binds/targets a UDP shunt.
type UdpConnectOp struct {
	base
	Local  *IPService
	Remote *IPService
}

func (e *UdpConnectOp) Kind() string { return "udp-connect-op" }

// SshConnectOp launches or attaches to an SSH master connection.
//
// RemoteUser is supported even though the original library's
// historical callers always passed it null: the source carried two
// differing constructor signatures (with and without a remote user)
// and this design keeps the superset.
type SshConnectOp struct {
	base
	Host       string
	Port       uint16
	RemoteUser string
	Timeout    time.Duration
}

func (e *SshConnectOp) Kind() string { return "ssh-connect-op" }

// ShellOp runs a single shell command on an established SSH master
// (or, for a local subprocess shunt, on the host directly).
type ShellOp struct {
	base
	Command string
	Args    []string
	Env     map[string]string
}

func (e *ShellOp) Kind() string { return "shell-op" }

func NewShellOp(command string, args ...string) *ShellOp {
	return &ShellOp{Command: command, Args: args}
}
