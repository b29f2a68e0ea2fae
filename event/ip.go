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

import "fmt"

// IPAddr is a single resolved address.
type IPAddr struct {
	IP string
}

// IPService identifies an endpoint by host and port, plus the address
// list a name resolver has populated (empty until resolved). An
// out-of-scope name resolver consumes an IPService with an unresolved
// Host and returns the same value with Addrs populated, or a
// flow-lookup failure DetailedEvent.
type IPService struct {
	base
	Host  string
	Port  uint16
	Addrs []IPAddr
}

func (e *IPService) Kind() string { return "ip-service" }

func NewIPService(host string, port uint16) *IPService {
	return &IPService{Host: host, Port: port}
}

// Resolved reports whether at least one address has been attached.
func (e *IPService) Resolved() bool {
	return len(e.Addrs) > 0
}

func (e *IPService) String() string {
	return fmt.Sprintf("%s:%d", e.Host, e.Port)
}
