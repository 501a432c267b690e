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
	"github.com/loomyard/loom/deadletter"
	"github.com/loomyard/loom/hash"
	"github.com/loomyard/loom/log"
)

// Option is the interface that applies a configuration option to a Fabric.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(f *Fabric)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(f *Fabric)

// Apply applies the Fabric's option
func (f OptionFunc) Apply(fab *Fabric) {
	f(fab)
}

// WithLogger sets the fabric's logger.
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(f *Fabric) {
		f.logger = logger
	})
}

// WithNode sets the node identity packed into every handle this fabric
// allocates. It must fit in the bits above HandleRemoteShift.
func WithNode(node uint32) Option {
	return OptionFunc(func(f *Fabric) {
		f.node = node
	})
}

// WithMailboxCapacity sets the initial ring capacity of spawned mailboxes.
func WithMailboxCapacity(capacity int) Option {
	return OptionFunc(func(f *Fabric) {
		f.mailboxCapacity = capacity
	})
}

// WithReadyQueueCapacity sets the fixed ready queue capacity. The value must
// be a power of two; the queue never grows, and overflowing it is fatal.
func WithReadyQueueCapacity(capacity uint32) Option {
	return OptionFunc(func(f *Fabric) {
		f.readyCapacity = capacity
	})
}

// WithMulticastDispatcher sets the consumer of multicast packets surrendered
// by mailboxes being torn down.
func WithMulticastDispatcher(dispatcher MulticastDispatcher) Option {
	return OptionFunc(func(f *Fabric) {
		f.multicast = dispatcher
	})
}

// WithDeadletters sets the sink that collects messages dropped during
// mailbox teardown.
func WithDeadletters(sink *deadletter.Sink) Option {
	return OptionFunc(func(f *Fabric) {
		f.deadletters = sink
	})
}

// WithHasher sets the hash function used to shard the handle registry.
func WithHasher(hasher hash.Hasher) Option {
	return OptionFunc(func(f *Fabric) {
		f.hasher = hasher
	})
}
