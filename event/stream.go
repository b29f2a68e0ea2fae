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

// MuxEvent marks subsequent buffer packets as belonging to one
// sub-stream identified by Channel, until the next MuxEvent.
type MuxEvent struct {
	base
	Channel uint
}

func (e *MuxEvent) Kind() string { return "mux" }

func NewMux(channel uint) *MuxEvent {
	return &MuxEvent{Channel: channel}
}

// Anchor is the reference point a Position seek is relative to.
type Anchor uint8

const (
	AnchorBegin Anchor = iota
	AnchorCurrent
	AnchorEnd
)

// Position is a seek request (pushed in) or a seek notification (emitted
// out) carrying an anchor and a signed offset relative to it.
type Position struct {
	base
	Anchor Anchor
	Offset int64
}

func (e *Position) Kind() string { return "position" }

func NewPosition(anchor Anchor, offset int64) *Position {
	return &Position{Anchor: anchor, Offset: offset}
}

// SegmentRequest asks a shunt to read Length bytes as one delimited
// segment; Length == -1 means read until EOF.
type SegmentRequest struct {
	base
	Length int64
}

func (e *SegmentRequest) Kind() string { return "segment-request" }

// ReadToEOF is the sentinel SegmentRequest.Length meaning "read until EOF".
const ReadToEOF int64 = -1

func NewSegmentRequest(length int64) *SegmentRequest {
	return &SegmentRequest{Length: length}
}
