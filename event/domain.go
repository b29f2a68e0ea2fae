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

// Package event implements the polymorphic event variants carried as the
// object payload of a Packet: detailed (domain, code) control events,
// process results, property broadcasts, mux framing markers, seek
// requests and segment requests, and connector-specific endpoint
// descriptors.
package event

// Domain is an interned string namespace for event codes. A Domain holds
// only its name, so two Domain values compare equal exactly when their
// names are equal; this stands in for the original library's
// quark-interned strings for its event domains.
type Domain struct {
	name string
}

func (d Domain) String() string {
	return d.name
}

var domainTable = map[string]*Domain{}

func intern(name string) Domain {
	if d, ok := domainTable[name]; ok {
		return *d
	}
	d := &Domain{name: name}
	domainTable[name] = d
	return *d
}

// Built-in domains, exhaustive for the core event model.
var (
	DomainStream = intern("flow-stream")
	DomainFile   = intern("flow-file")
	DomainExec   = intern("flow-exec")
	DomainSocket = intern("flow-socket")
	DomainLookup = intern("flow-lookup")
	DomainSsh    = intern("flow-ssh")
)

// Code is a domain-scoped event code. The same integer value means
// different things in different domains, so Code is always paired with
// a Domain in a DomainCode.
type Code int

// Stream codes (domain flow-stream).
const (
	StreamBegin Code = iota + 1
	StreamEnd
	StreamEndConverse
	StreamDenied
	StreamSegmentBegin
	StreamSegmentEnd
	StreamSegmentDenied
	StreamError
	StreamAppError
	StreamPhysicalError
	StreamResourceError
	StreamFlush
)

// File codes (domain flow-file).
const (
	FileReachedEnd Code = iota + 1
	FileNeedRestart
	FileRestart
	FilePermissionDenied
	FileIsNotAFile
	FileTooManyLinks
	FileOutOfHandles
	FilePathTooLong
	FileNoSpace
	FileIsReadOnly
	FileIsLocked
	FileDoesNotExist
)

// Exec codes (domain flow-exec).
const (
	ExecParseError Code = iota + 1
	ExecRunError
)

// Socket codes (domain flow-socket).
const (
	SocketAddressProtected Code = iota + 1
	SocketAddressInUse
	SocketAddressDoesNotExist
	SocketConnectionRefused
	SocketConnectionReset
	SocketNetworkUnreachable
	SocketAcceptError
	SocketOversizedPacket
)

// Lookup codes (domain flow-lookup).
const (
	LookupTemporaryServerFailure Code = iota + 1
	LookupPermanentServerFailure
	LookupNoRecords
)

// Ssh codes (domain flow-ssh).
const (
	SshMasterFailed Code = iota + 1
	SshMasterNotConnected
)

// DomainCode is one (domain, code) pair. A DetailedEvent carries a list
// of these; it matches if any one of them matches.
type DomainCode struct {
	Domain Domain
	Code   Code
}

func DC(d Domain, c Code) DomainCode {
	return DomainCode{Domain: d, Code: c}
}
