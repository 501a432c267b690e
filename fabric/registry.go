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
	"encoding/binary"
	"sync"

	"github.com/loomyard/loom/hash"
	"github.com/loomyard/loom/internal/syncmap"
)

// registryShards spreads the handle lookup across independently locked maps
// so concurrent senders resolving handles do not serialize on one mutex.
const registryShards = 32

// registry allocates handles and maintains the handle to mailbox lookup.
// A handle packs the node identity above HandleRemoteShift and a per-node
// sequence below it; sequence zero is reserved as invalid.
type registry struct {
	node   uint32
	hasher hash.Hasher

	mu       sync.Mutex
	sequence uint32

	shards [registryShards]*syncmap.SyncMap[uint32, *Mailbox]
	names  *syncmap.SyncMap[string, uint32]
}

func newRegistry(node uint32, hasher hash.Hasher) *registry {
	r := &registry{
		node:   node,
		hasher: hasher,
		names:  syncmap.New[string, uint32](),
	}
	for i := range r.shards {
		r.shards[i] = syncmap.New[uint32, *Mailbox]()
	}
	return r
}

// register allocates a fresh handle, creates the mailbox through the given
// constructor and records the pair. It fails only when every per-node
// sequence value is in use.
func (r *registry) register(create func(handle uint32) *Mailbox) (*Mailbox, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for tries := 0; tries < HandleMask; tries++ {
		r.sequence++
		sequence := r.sequence & HandleMask
		if sequence == 0 {
			r.sequence++
			sequence = r.sequence & HandleMask
		}
		handle := r.node<<HandleRemoteShift | sequence
		shard := r.shard(handle)
		if _, taken := shard.Get(handle); taken {
			continue
		}
		mb := create(handle)
		shard.Set(handle, mb)
		return mb, nil
	}
	return nil, ErrHandlesExhausted
}

// lookup resolves a handle to its mailbox.
func (r *registry) lookup(handle uint32) (*Mailbox, bool) {
	return r.shard(handle).Get(handle)
}

// bind attaches a service name to a registered handle.
func (r *registry) bind(name string, handle uint32) error {
	if _, ok := r.lookup(handle); !ok {
		return ErrHandleNotFound
	}
	if !r.names.SetIfAbsent(name, handle) {
		return ErrNameTaken
	}
	return nil
}

// lookupName resolves a bound service name to its mailbox.
func (r *registry) lookupName(name string) (*Mailbox, bool) {
	handle, ok := r.names.Get(name)
	if !ok {
		return nil, false
	}
	return r.lookup(handle)
}

// retire unregisters a handle, dropping any names bound to it, and returns
// the mailbox for teardown.
func (r *registry) retire(handle uint32) (*Mailbox, bool) {
	shard := r.shard(handle)
	mb, ok := shard.Get(handle)
	if !ok {
		return nil, false
	}
	shard.Delete(handle)

	var stale []string
	r.names.Range(func(name string, bound uint32) {
		if bound == handle {
			stale = append(stale, name)
		}
	})
	for _, name := range stale {
		r.names.Delete(name)
	}
	return mb, true
}

// size returns the number of registered mailboxes.
func (r *registry) size() int {
	total := 0
	for _, shard := range r.shards {
		total += shard.Len()
	}
	return total
}

func (r *registry) shard(handle uint32) *syncmap.SyncMap[uint32, *Mailbox] {
	var key [4]byte
	binary.LittleEndian.PutUint32(key[:], handle)
	return r.shards[r.hasher.HashCode(key[:])%registryShards]
}
