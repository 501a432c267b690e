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
	"go.uber.org/atomic"

	"github.com/loomyard/loom/deadletter"
	"github.com/loomyard/loom/hash"
	"github.com/loomyard/loom/log"
)

// maxNode bounds the node identity to the bits above the handle sequence.
const maxNode = (1 << (32 - HandleRemoteShift)) - 1

// Fabric is the messaging runtime: it owns the ready queue, the handle
// registry and the per-runtime configuration every mailbox consults. Create
// one with New and spawn mailboxes from it.
type Fabric struct {
	logger          log.Logger
	node            uint32
	mailboxCapacity int
	readyCapacity   uint32
	hasher          hash.Hasher
	multicast       MulticastDispatcher
	deadletters     *deadletter.Sink

	ready    *ReadyQueue
	registry *registry

	spawned       atomic.Int64
	releasedBoxes atomic.Int64
	pushed        atomic.Int64
	delivered     atomic.Int64
	deadlettered  atomic.Int64
	expansions    atomic.Int64
}

// New creates a Fabric with the given options.
func New(opts ...Option) (*Fabric, error) {
	f := &Fabric{
		logger:          log.DefaultLogger,
		mailboxCapacity: DefaultMailboxCapacity,
		readyCapacity:   DefaultReadyQueueCapacity,
		hasher:          hash.DefaultHasher(),
		multicast:       releaseDispatcher{},
	}
	for _, opt := range opts {
		opt.Apply(f)
	}

	if f.mailboxCapacity < 1 {
		return nil, ErrInvalidMailboxCapacity
	}
	if f.readyCapacity == 0 || f.readyCapacity&(f.readyCapacity-1) != 0 {
		return nil, ErrInvalidReadyQueueCapacity
	}
	if f.node > maxNode {
		return nil, ErrInvalidNode
	}

	f.ready = newReadyQueue(f.readyCapacity)
	f.registry = newRegistry(f.node, f.hasher)
	return f, nil
}

// Spawn registers a new mailbox under a fresh handle and lists it on the
// ready queue so its first message is dispatched without delay.
func (f *Fabric) Spawn() (*Mailbox, error) {
	mb, err := f.registry.register(func(handle uint32) *Mailbox {
		return newMailbox(handle, f.mailboxCapacity, f)
	})
	if err != nil {
		return nil, err
	}
	mb.mu.Lock()
	mb.publish()
	mb.mu.Unlock()

	f.spawned.Inc()
	f.logger.Debugf("spawned mailbox %#x", mb.handle)
	return mb, nil
}

// Lookup resolves a handle to its mailbox.
func (f *Fabric) Lookup(handle uint32) (*Mailbox, error) {
	mb, ok := f.registry.lookup(handle)
	if !ok {
		return nil, ErrHandleNotFound
	}
	return mb, nil
}

// Bind attaches a service name to a registered handle. A name can be bound
// once; rebinding returns ErrNameTaken.
func (f *Fabric) Bind(name string, handle uint32) error {
	return f.registry.bind(name, handle)
}

// LookupName resolves a bound service name to its mailbox.
func (f *Fabric) LookupName(name string) (*Mailbox, error) {
	mb, ok := f.registry.lookupName(name)
	if !ok {
		return nil, ErrHandleNotFound
	}
	return mb, nil
}

// Send delivers a message to the mailbox registered under the given handle.
func (f *Fabric) Send(handle uint32, msg Message) error {
	mb, err := f.Lookup(handle)
	if err != nil {
		return err
	}
	mb.Push(msg)
	return nil
}

// Retire unregisters a handle and arms its mailbox for teardown. New sends
// to the handle fail immediately; messages already queued are drained into
// the deadletters sink when a worker next acquires the mailbox. An idle
// mailbox is relisted here so that teardown is not deferred forever.
func (f *Fabric) Retire(handle uint32) error {
	mb, ok := f.registry.retire(handle)
	if !ok {
		return ErrHandleNotFound
	}
	mb.MarkRelease()

	mb.mu.Lock()
	if mb.state == stateOut {
		mb.state = stateQueued
		mb.publish()
	}
	mb.mu.Unlock()

	f.logger.Debugf("retired mailbox %#x", handle)
	return nil
}

// Ready exposes the global ready queue. Workers acquire mailboxes from it.
func (f *Fabric) Ready() *ReadyQueue {
	return f.ready
}

// Deadletters returns the configured deadletters sink, or nil.
func (f *Fabric) Deadletters() *deadletter.Sink {
	return f.deadletters
}

// Logger returns the fabric's logger.
func (f *Fabric) Logger() log.Logger {
	return f.logger
}

// Metric returns a point-in-time snapshot of the fabric's counters.
func (f *Fabric) Metric() Metric {
	return Metric{
		mailboxes:    int64(f.registry.size()),
		spawned:      f.spawned.Load(),
		released:     f.releasedBoxes.Load(),
		pushed:       f.pushed.Load(),
		delivered:    f.delivered.Load(),
		deadlettered: f.deadlettered.Load(),
		expansions:   f.expansions.Load(),
		ready:        f.ready.Len(),
	}
}

// dispatchMulticast hands a packet surrendered during teardown to the
// configured multicast dispatcher.
func (f *Fabric) dispatchMulticast(packet *Multicast) {
	f.multicast.Dispatch(packet)
}
