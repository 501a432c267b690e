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

import (
	"fmt"

	"go.uber.org/atomic"
)

// Multicast is a payload shared by every recipient of a multicast send.
// Each copy placed in a mailbox holds one reference; the payload is
// reclaimed when the last reference is released.
type Multicast struct {
	source uint32
	data   []byte
	refs   atomic.Int32
}

// NewMulticast creates a shared packet holding the given payload with one
// reference per expected copy.
func NewMulticast(source uint32, data []byte, copies int32) *Multicast {
	if copies <= 0 {
		panic(fmt.Sprintf("fabric: multicast copies must be positive, got %d", copies))
	}
	packet := &Multicast{source: source, data: data}
	packet.refs.Store(copies)
	return packet
}

// Source returns the sender handle.
func (m *Multicast) Source() uint32 {
	return m.source
}

// Data returns the shared payload.
func (m *Multicast) Data() []byte {
	return m.data
}

// Refs returns the current reference count.
func (m *Multicast) Refs() int32 {
	return m.refs.Load()
}

// Retain adds n references for additional copies.
func (m *Multicast) Retain(n int32) {
	m.refs.Add(n)
}

// Release drops one reference and reports whether the packet is now dead.
// When it returns true the payload has been detached and must not be used.
func (m *Multicast) Release() bool {
	remaining := m.refs.Dec()
	if remaining < 0 {
		panic(fmt.Sprintf("fabric: multicast packet over-released, refs=%d", remaining))
	}
	if remaining == 0 {
		m.data = nil
		return true
	}
	return false
}

// MulticastDispatcher consumes multicast packets surrendered by a mailbox
// being torn down.
type MulticastDispatcher interface {
	// Dispatch takes over one reference of the given packet.
	Dispatch(packet *Multicast)
}

// MulticastDispatcherFunc implements MulticastDispatcher.
type MulticastDispatcherFunc func(packet *Multicast)

// Dispatch implementation
func (f MulticastDispatcherFunc) Dispatch(packet *Multicast) {
	f(packet)
}

// releaseDispatcher is the default multicast dispatcher: it simply drops the
// reference the torn-down mailbox was holding.
type releaseDispatcher struct{}

var _ MulticastDispatcher = releaseDispatcher{}

func (releaseDispatcher) Dispatch(packet *Multicast) {
	packet.Release()
}
