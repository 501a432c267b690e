/*
 * MIT License
 *
 * Copyright (c) 2023-2026 Loomyard
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
 */

package fabric

import "fmt"

// Handle layout shared with the harbor and multicast collaborators. The low
// HandleMask bits of a handle carry the per-node sequence; the bits above
// HandleRemoteShift carry the node identity. The same split is reused to
// pack a payload type tag next to the payload length in a message size word.
const (
	// HandleMask selects the per-node sequence bits of a handle and the
	// payload length bits of a packed size word.
	HandleMask = 0xffffff
	// HandleRemoteShift is the bit position of the node identity in a handle
	// and of the payload type tag in a packed size word.
	HandleRemoteShift = 24
)

// PayloadType tags the content of a message payload.
type PayloadType uint8

const (
	// PayloadText is an ordinary opaque payload.
	PayloadText PayloadType = iota
	// PayloadResponse marks the reply half of a request/response exchange.
	PayloadResponse
	// PayloadMulticast marks a reference-counted payload shared across
	// mailboxes; the fabric hands it to the multicast dispatcher at
	// teardown instead of dropping it.
	PayloadMulticast
	// PayloadClient marks a payload originating from an external client.
	PayloadClient
	// PayloadSystem marks a runtime control payload.
	PayloadSystem
	// PayloadHarbor marks a payload in transit to or from a remote node.
	PayloadHarbor
)

// Message is an owned value travelling through a mailbox. Pushing a message
// transfers ownership of its payload to the mailbox; popping transfers it to
// the worker.
type Message struct {
	// Source is the sender handle.
	Source uint32
	// Session correlates a response with its originating request.
	// Zero means no session.
	Session int32
	// Data is the opaque payload. Nil for multicast messages, whose shared
	// payload lives in the attached packet.
	Data []byte

	size   uint64
	packet *Multicast
}

// NewMessage creates an ordinary text message.
func NewMessage(source uint32, session int32, data []byte) Message {
	return NewTypedMessage(source, session, data, PayloadText)
}

// NewTypedMessage creates a message carrying the given payload type tag.
// The payload may be at most HandleMask bytes long.
func NewTypedMessage(source uint32, session int32, data []byte, ptype PayloadType) Message {
	return Message{
		Source:  source,
		Session: session,
		Data:    data,
		size:    packSize(len(data), ptype),
	}
}

// NewMulticastMessage creates a message referencing a shared multicast
// packet. The packed length is zero: the payload is owned by the packet,
// not the message.
func NewMulticastMessage(source uint32, session int32, packet *Multicast) Message {
	return Message{
		Source:  source,
		Session: session,
		size:    packSize(0, PayloadMulticast),
		packet:  packet,
	}
}

// Type returns the payload type tag packed into the size word.
func (m Message) Type() PayloadType {
	return PayloadType(m.size >> HandleRemoteShift)
}

// PayloadLen returns the payload byte length packed into the size word.
func (m Message) PayloadLen() int {
	return int(m.size & HandleMask)
}

// Size returns the packed size word: low bits payload length, high bits
// payload type. The layout is shared with the harbor collaborator.
func (m Message) Size() uint64 {
	return m.size
}

// Packet returns the shared multicast packet the message references, or nil
// for ordinary messages.
func (m Message) Packet() *Multicast {
	return m.packet
}

func packSize(length int, ptype PayloadType) uint64 {
	if length < 0 || length > HandleMask {
		panic(fmt.Sprintf("fabric: payload length %d exceeds %d bytes", length, HandleMask))
	}
	return uint64(length) | uint64(ptype)<<HandleRemoteShift
}
