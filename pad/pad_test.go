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

package pad_test

import (
	"github.com/nabbar/flow/dispatch"
	"github.com/nabbar/flow/packet"
	"github.com/nabbar/flow/pad"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type recordingOwner struct {
	processed  []*pad.Pad
	blocked    []*pad.Pad
	unblocked  []*pad.Pad
}

func (o *recordingOwner) ProcessInput(p *pad.Pad)       { o.processed = append(o.processed, p) }
func (o *recordingOwner) OutputPadBlocked(p *pad.Pad)   { o.blocked = append(o.blocked, p) }
func (o *recordingOwner) OutputPadUnblocked(p *pad.Pad) { o.unblocked = append(o.unblocked, p) }

var _ = Describe("Pad", func() {
	It("connects symmetric opposite-direction pads", func() {
		d := dispatch.New()
		out := pad.NewOutput(&recordingOwner{}, d)
		in := pad.NewInput(&recordingOwner{}, d)
		pad.Connect(out, in)
		Expect(out.Peer()).To(Equal(in))
		Expect(in.Peer()).To(Equal(out))
	})

	It("refuses to connect two pads of the same direction", func() {
		d := dispatch.New()
		a := pad.NewOutput(&recordingOwner{}, d)
		b := pad.NewOutput(&recordingOwner{}, d)
		pad.Connect(a, b)
		Expect(a.Peer()).To(BeNil())
	})

	It("delivers a pushed packet and schedules ProcessInput", func() {
		d := dispatch.New()
		srcOwner := &recordingOwner{}
		dstOwner := &recordingOwner{}
		out := pad.NewOutput(srcOwner, d)
		in := pad.NewInput(dstOwner, d)
		pad.Connect(out, in)

		p, _ := packet.New(packet.FormatBuffer, []byte("hi"), 2)
		out.Push(p)

		Expect(in.Queue().LengthInPackets()).To(Equal(1))
		Expect(dstOwner.processed).To(Equal([]*pad.Pad{in}))
	})

	It("does not schedule ProcessInput when the input pad is blocked", func() {
		d := dispatch.New()
		dstOwner := &recordingOwner{}
		out := pad.NewOutput(&recordingOwner{}, d)
		in := pad.NewInput(dstOwner, d)
		pad.Connect(out, in)
		in.Block()

		p, _ := packet.New(packet.FormatBuffer, []byte("x"), 1)
		out.Push(p)

		Expect(in.Queue().LengthInPackets()).To(Equal(1))
		Expect(dstOwner.processed).To(BeEmpty())
	})

	It("re-drains a blocked input pad once unblocked", func() {
		d := dispatch.New()
		dstOwner := &recordingOwner{}
		out := pad.NewOutput(&recordingOwner{}, d)
		in := pad.NewInput(dstOwner, d)
		pad.Connect(out, in)
		in.Block()

		p, _ := packet.New(packet.FormatBuffer, []byte("x"), 1)
		out.Push(p)
		Expect(dstOwner.processed).To(BeEmpty())

		in.Unblock()
		Expect(dstOwner.processed).To(Equal([]*pad.Pad{in}))
	})

	It("notifies the owner when an output pad blocks and unblocks", func() {
		d := dispatch.New()
		srcOwner := &recordingOwner{}
		out := pad.NewOutput(srcOwner, d)

		out.Block()
		Expect(srcOwner.blocked).To(Equal([]*pad.Pad{out}))

		out.Unblock()
		Expect(srcOwner.unblocked).To(Equal([]*pad.Pad{out}))
	})

	It("disconnecting one side clears both peer pointers", func() {
		d := dispatch.New()
		out := pad.NewOutput(&recordingOwner{}, d)
		in := pad.NewInput(&recordingOwner{}, d)
		pad.Connect(out, in)

		pad.Disconnect(out)
		Expect(out.Peer()).To(BeNil())
		Expect(in.Peer()).To(BeNil())
	})
})
