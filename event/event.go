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

// Source is a weak back-reference to the element that produced an
// event: relation and lookup, never ownership. It is an index into a
// generational table, so a destroyed element naturally yields a zero
// Source that resolves to nothing.
type Source struct {
	Index uint64
	Gen   uint32
}

// IsZero reports whether this Source was never set.
func (s Source) IsZero() bool {
	return s.Index == 0 && s.Gen == 0
}

// Event is the common interface implemented by every event variant.
// Kind identifies the concrete variant for type switches without
// reflection-based dispatch.
type Event interface {
	Kind() string
	From() Source
	SetFrom(Source)
}

// base is embedded by every concrete event to provide the Source field
// and its accessors.
type base struct {
	src Source
}

func (b *base) From() Source     { return b.src }
func (b *base) SetFrom(s Source) { b.src = s }

// DetailedEvent is the core control/error event: a list of (domain,
// code) pairs any one of which the event may be matched against, plus a
// human description.
type DetailedEvent struct {
	base
	Codes       []DomainCode
	Description string
}

func (e *DetailedEvent) Kind() string { return "detailed" }

// NewDetailed builds a DetailedEvent for a single (domain, code) pair,
// defaulting the description to the registered table entry.
func NewDetailed(d Domain, c Code) *DetailedEvent {
	dc := DC(d, c)
	return &DetailedEvent{Codes: []DomainCode{dc}, Description: Describe(dc)}
}

// NewDetailedMulti builds a DetailedEvent matching any of the given pairs.
func NewDetailedMulti(desc string, dcs ...DomainCode) *DetailedEvent {
	return &DetailedEvent{Codes: append([]DomainCode{}, dcs...), Description: desc}
}

// Matches reports whether this event carries the given (domain, code) pair.
func (e *DetailedEvent) Matches(d Domain, c Code) bool {
	for _, dc := range e.Codes {
		if dc.Domain == d && dc.Code == c {
			return true
		}
	}
	return false
}

// MatchesDomain reports whether this event carries any code in the given domain.
func (e *DetailedEvent) MatchesDomain(d Domain) bool {
	for _, dc := range e.Codes {
		if dc.Domain == d {
			return true
		}
	}
	return false
}

func (e *DetailedEvent) Error() string {
	if e.Description != "" {
		return e.Description
	}
	if len(e.Codes) > 0 {
		return Describe(e.Codes[0])
	}
	return "detailed event"
}

// ProcessResult carries a subprocess's exit code, produced by a
// subprocess shunt or an SSH-runner shunt on ShellOp completion.
type ProcessResult struct {
	base
	ExitCode int
}

func (e *ProcessResult) Kind() string { return "process-result" }

func NewProcessResult(code int) *ProcessResult {
	return &ProcessResult{ExitCode: code}
}
