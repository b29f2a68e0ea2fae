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

// Package flowlog provides the structured logging fields every
// dispatch-thread component logs through: one logrus entry per
// element/connector/shunt event, tagged with the domain and code of
// whatever DetailedEvent triggered it.
package flowlog

import (
	"github.com/sirupsen/logrus"

	"github.com/nabbar/flow/event"
)

const (
	FieldComponent = "component"
	FieldChannel   = "channel"
	FieldDomain    = "domain"
	FieldCode      = "code"
	FieldState     = "state"
)

// Logger wraps a *logrus.Logger with the field vocabulary Flow
// components share, so every log line from every package looks the
// same regardless of which element emitted it.
type Logger struct {
	base *logrus.Logger
}

func New(base *logrus.Logger) *Logger {
	if base == nil {
		base = logrus.New()
	}
	return &Logger{base: base}
}

// Default returns a Logger wrapping logrus's package-level default,
// text-formatted with a millisecond timestamp.
func Default() *Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	return New(l)
}

// WithComponent scopes every subsequent field to one named component
// (e.g. "connector", "mux.serializer", "shunt.file").
func (l *Logger) WithComponent(name string) *logrus.Entry {
	return l.base.WithField(FieldComponent, name)
}

// Event logs one DetailedEvent at a level derived from its domain/code:
// stream lifecycle events log at Debug, denial/failure codes at Warn.
func (l *Logger) Event(component string, e *event.DetailedEvent) {
	entry := l.WithComponent(component)
	for _, dc := range e.Codes {
		entry = entry.WithField(FieldDomain, dc.Domain.String()).WithField(FieldCode, int(dc.Code))
	}
	failure := false
	for _, c := range []event.Code{event.StreamDenied, event.StreamSegmentDenied, event.StreamError,
		event.StreamAppError, event.StreamPhysicalError, event.StreamResourceError} {
		if e.Matches(event.DomainStream, c) {
			failure = true
		}
	}
	if e.MatchesDomain(event.DomainStream) && !failure {
		entry.Debug(e.Description)
		return
	}
	entry.Warn(e.Description)
}

func (l *Logger) StateChange(component, from, to string) {
	l.WithComponent(component).WithField(FieldState, to).Debugf("%s -> %s", from, to)
}
