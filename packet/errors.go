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

package packet

import (
	liberr "github.com/nabbar/flow/errors"
)

// Error codes for the packet package, registered in the errors package's
// global code -> message table the same way every other package here
// registers its own codes in errors/code.go.
const (
	codeInvalidArgs liberr.CodeError = iota + 4100
	codeOversize
)

var (
	errInvalidArgs = codeInvalidArgs
	errOversize    = codeOversize
)

func init() {
	if !liberr.ExistInMapMessage(codeInvalidArgs) {
		liberr.RegisterIdFctMessage(codeInvalidArgs, messages)
	}
}

func messages(code liberr.CodeError) string {
	switch code {
	case codeInvalidArgs:
		return "invalid packet constructor arguments"
	case codeOversize:
		return "packet buffer exceeds the maximum allowed size"
	default:
		return ""
	}
}
