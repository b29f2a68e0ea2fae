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

package event_test

import (
	"github.com/nabbar/flow/event"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("DetailedEvent", func() {
	It("matches any of its listed (domain, code) pairs", func() {
		e := event.NewDetailedMulti("boom", event.DC(event.DomainSocket, event.SocketConnectionReset))
		Expect(e.Matches(event.DomainSocket, event.SocketConnectionReset)).To(BeTrue())
		Expect(e.Matches(event.DomainSocket, event.SocketConnectionRefused)).To(BeFalse())
		Expect(e.MatchesDomain(event.DomainSocket)).To(BeTrue())
	})

	It("defaults its description from the registered table", func() {
		e := event.NewDetailed(event.DomainStream, event.StreamBegin)
		Expect(e.Description).To(Equal("stream opened"))
	})

	It("falls back to a generic description for unregistered codes", func() {
		got := event.Describe(event.DC(event.DomainStream, event.Code(9999)))
		Expect(got).To(ContainSubstring("flow-stream"))
	})
})

var _ = Describe("Domain interning", func() {
	It("compares domains by their interned name", func() {
		Expect(event.DomainSocket).To(Equal(event.DomainSocket))
		Expect(event.DomainSocket).ToNot(Equal(event.DomainFile))
	})
})

var _ = Describe("PropertyEvent", func() {
	It("matches by instance identity when set", func() {
		id := event.Source{Index: 7, Gen: 1}
		t := event.TargetInstance(id)
		Expect(t.Matches("anything", id)).To(BeTrue())
		Expect(t.Matches("anything", event.Source{Index: 8, Gen: 1})).To(BeFalse())
	})

	It("matches by kind when no instance is set", func() {
		t := event.TargetKind("tcp-connector")
		Expect(t.Matches("tcp-connector", event.Source{})).To(BeTrue())
	})

	It("retrieves a named property", func() {
		p := event.NewPropertyEvent(event.TargetKind("x"), event.Property{Name: "timeout", Value: 5})
		v, ok := p.Get("timeout")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(5))
	})
})

var _ = Describe("SegmentRequest", func() {
	It("uses -1 as the read-to-EOF sentinel", func() {
		r := event.NewSegmentRequest(event.ReadToEOF)
		Expect(r.Length).To(Equal(int64(-1)))
	})
})
