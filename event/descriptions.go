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

// descriptions is the default human-readable text keyed by (domain, code).
var descriptions = map[DomainCode]string{
	DC(DomainStream, StreamBegin):         "stream opened",
	DC(DomainStream, StreamEnd):           "stream closed",
	DC(DomainStream, StreamEndConverse):   "stream closed by peer, half-duplex end",
	DC(DomainStream, StreamDenied):        "stream could not be established",
	DC(DomainStream, StreamSegmentBegin):  "segment started",
	DC(DomainStream, StreamSegmentEnd):    "segment finished",
	DC(DomainStream, StreamSegmentDenied): "segment request denied",
	DC(DomainStream, StreamError):         "stream error",
	DC(DomainStream, StreamAppError):      "application protocol error",
	DC(DomainStream, StreamPhysicalError): "physical transport error",
	DC(DomainStream, StreamResourceError): "resource exhausted",
	DC(DomainStream, StreamFlush):         "flush requested",

	DC(DomainFile, FileReachedEnd):       "reached end of file",
	DC(DomainFile, FileNeedRestart):      "operation needs to be restarted",
	DC(DomainFile, FileRestart):          "operation restarted",
	DC(DomainFile, FilePermissionDenied): "permission denied",
	DC(DomainFile, FileIsNotAFile):       "path is not a regular file",
	DC(DomainFile, FileTooManyLinks):     "too many symbolic links",
	DC(DomainFile, FileOutOfHandles):     "out of file handles",
	DC(DomainFile, FilePathTooLong):      "path too long",
	DC(DomainFile, FileNoSpace):          "no space left on device",
	DC(DomainFile, FileIsReadOnly):       "file system is read-only",
	DC(DomainFile, FileIsLocked):         "file is locked",
	DC(DomainFile, FileDoesNotExist):     "file does not exist",

	DC(DomainExec, ExecParseError): "could not parse command line",
	DC(DomainExec, ExecRunError):   "could not run command",

	DC(DomainSocket, SocketAddressProtected):    "address is protected",
	DC(DomainSocket, SocketAddressInUse):        "address already in use",
	DC(DomainSocket, SocketAddressDoesNotExist): "address does not exist",
	DC(DomainSocket, SocketConnectionRefused):   "connection refused",
	DC(DomainSocket, SocketConnectionReset):     "connection reset by peer",
	DC(DomainSocket, SocketNetworkUnreachable):  "network unreachable",
	DC(DomainSocket, SocketAcceptError):         "could not accept connection",
	DC(DomainSocket, SocketOversizedPacket):     "datagram too large for the configured buffer",

	DC(DomainLookup, LookupTemporaryServerFailure): "temporary name server failure",
	DC(DomainLookup, LookupPermanentServerFailure): "permanent name server failure",
	DC(DomainLookup, LookupNoRecords):              "no matching records",

	DC(DomainSsh, SshMasterFailed):       "ssh master connection failed",
	DC(DomainSsh, SshMasterNotConnected): "ssh master connection is not established",
}

// Describe returns the default description for a (domain, code) pair, or
// a generic fallback if none is registered.
func Describe(dc DomainCode) string {
	if s, ok := descriptions[dc]; ok {
		return s
	}
	return fmt.Sprintf("%s: code %d", dc.Domain, dc.Code)
}
