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

package packet_test

import (
	"github.com/nabbar/flow/packet"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type counted struct {
	n *int
}

func (c *counted) Release() {
	*c.n++
}

var _ = Describe("Packet", func() {
	Describe("buffer packets", func() {
		It("copies the requested bytes and starts with refcount 1", func() {
			p, err := packet.New(packet.FormatBuffer, []byte("hello world"), 5)
			Expect(err).To(BeNil())
			Expect(p.RefCount()).To(Equal(int32(1)))
			Expect(p.GetSize()).To(Equal(5))
			Expect(p.GetData()).To(Equal([]byte("hello")))
		})

		It("rejects an oversize buffer", func() {
			_, err := packet.New(packet.FormatBuffer, []byte{1}, packet.MaxBufferSize+1)
			Expect(err).ToNot(BeNil())
		})

		It("deep copies on Copy", func() {
			p, _ := packet.New(packet.FormatBuffer, []byte("abc"), 3)
			c := p.Copy()
			Expect(c.GetData()).To(Equal(p.GetData()))
			b := c.GetData().([]byte)
			b[0] = 'z'
			Expect(p.GetData().([]byte)[0]).To(Equal(byte('a')))
		})
	})

	Describe("object packets", func() {
		It("releases the referenced object exactly once on the last Unref", func() {
			n := 0
			obj := &counted{n: &n}
			p := packet.NewTakeObject(obj, 42)
			Expect(p.RefCount()).To(Equal(int32(1)))

			p.Ref()
			Expect(p.RefCount()).To(Equal(int32(2)))

			p.Unref()
			Expect(n).To(Equal(0))

			p.Unref()
			Expect(n).To(Equal(1))
		})

		It("shallow copies on Copy, sharing the same object", func() {
			obj := &counted{n: new(int)}
			p := packet.NewTakeObject(obj, 1)
			c := p.Copy()
			Expect(c.GetData()).To(BeIdenticalTo(p.GetData()))
			Expect(c.RefCount()).To(Equal(int32(1)))
		})

		It("releases exactly once even when the original and its copy are each independently unreffed to zero", func() {
			n := 0
			obj := &counted{n: &n}
			p := packet.NewTakeObject(obj, 1)
			c := p.Copy()

			p.Unref()
			Expect(n).To(Equal(0), "the original's drop must not release while the copy still holds it")

			c.Unref()
			Expect(n).To(Equal(1))
		})
	})
})
