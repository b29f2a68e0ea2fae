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

package pqueue_test

import (
	"math/rand"

	"github.com/nabbar/flow/packet"
	"github.com/nabbar/flow/pqueue"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Queue", func() {
	It("accounts bytes exactly across push/pop_bytes", func() {
		q := pqueue.New()
		var pushed, popped int

		for i := 0; i < 50; i++ {
			n := 1 + rand.Intn(64)
			buf := make([]byte, n)
			p, _ := packet.New(packet.FormatBuffer, buf, n)
			q.Push(p)
			pushed += n
			Expect(q.LengthInBytes()).To(Equal(pushed - popped))

			if i%3 == 0 {
				dest := make([]byte, 1+rand.Intn(40))
				got := q.PopBytes(dest)
				popped += got
				Expect(q.LengthInBytes()).To(Equal(pushed - popped))
			}
		}
	})

	It("pops bytes across packet boundaries in order", func() {
		q := pqueue.New()
		p1, _ := packet.New(packet.FormatBuffer, []byte("abc"), 3)
		p2, _ := packet.New(packet.FormatBuffer, []byte("defgh"), 5)
		q.Push(p1)
		q.Push(p2)

		dest := make([]byte, 6)
		n := q.PopBytes(dest)
		Expect(n).To(Equal(6))
		Expect(string(dest)).To(Equal("abcdef"))
		Expect(q.LengthInBytes()).To(Equal(2))
	})

	It("PopBytesExact is all-or-nothing", func() {
		q := pqueue.New()
		p, _ := packet.New(packet.FormatBuffer, []byte("ab"), 2)
		q.Push(p)

		dest := make([]byte, 5)
		Expect(q.PopBytesExact(dest)).To(BeFalse())
		Expect(q.LengthInBytes()).To(Equal(2))

		dest2 := make([]byte, 2)
		Expect(q.PopBytesExact(dest2)).To(BeTrue())
		Expect(string(dest2)).To(Equal("ab"))
	})

	It("stops PopBytes at the first object packet", func() {
		q := pqueue.New()
		p1, _ := packet.New(packet.FormatBuffer, []byte("ab"), 2)
		p2 := packet.NewTakeObject("marker", 0)
		q.Push(p1)
		q.Push(p2)

		dest := make([]byte, 10)
		n := q.PopBytes(dest)
		Expect(n).To(Equal(2))
		Expect(q.LengthInPackets()).To(Equal(1))
	})

	It("drop releases the head packet's reference", func() {
		q := pqueue.New()
		p, _ := packet.New(packet.FormatBuffer, []byte("x"), 1)
		q.Push(p)
		q.DropPacket()
		Expect(q.LengthInPackets()).To(Equal(0))
	})
})
