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
	"sync/atomic"
)

// DefaultReadyQueueCapacity is the ready queue capacity used when none is
// configured. Must be a power of two.
const DefaultReadyQueueCapacity = 1 << 16

// ReadyQueue is the process-wide list of mailboxes that currently have work.
// It is a fixed-capacity ring of non-owning mailbox references. Any number
// of producers may publish concurrently: each claims its own slot with a
// fetch-and-add on the tail counter and commits it by raising the slot's
// ready flag. Consumers race through a compare-and-swap on the head counter;
// the losers see an empty result and retry on their next turn.
//
// The queue never holds the same mailbox twice: publication is gated by the
// mailbox state machine, not by queue introspection. Running out of slots
// means more mailboxes are ready than the queue was sized for, which is a
// programming error, not a runtime condition.
type ReadyQueue struct {
	mask  uint32
	head  atomic.Uint32
	tail  atomic.Uint32
	slots []atomic.Pointer[Mailbox]
	ready []atomic.Bool
}

func newReadyQueue(capacity uint32) *ReadyQueue {
	return &ReadyQueue{
		mask:  capacity - 1,
		slots: make([]atomic.Pointer[Mailbox], capacity),
		ready: make([]atomic.Bool, capacity),
	}
}

// Push publishes the given mailbox. Safe for any number of concurrent
// producers. Panics when the queue is full: there is no back-pressure path,
// size the queue for the peak number of ready mailboxes instead.
func (q *ReadyQueue) Push(mb *Mailbox) {
	claimed := q.tail.Add(1) - 1
	if claimed-q.head.Load() > q.mask {
		panic(fmt.Sprintf("fabric: ready queue overflow, capacity %d", q.mask+1))
	}
	slot := claimed & q.mask
	q.slots[slot].Store(mb)
	// the ready flag is the commit point; the atomic store orders it after
	// the slot write
	q.ready[slot].Store(true)
}

// Pop removes and returns the next ready mailbox, or nil when the queue is
// empty, a producer is mid-publish, or another consumer won the head. The
// caller acquires informal exclusive possession of the returned mailbox
// until it relists or releases it.
func (q *ReadyQueue) Pop() *Mailbox {
	head := q.head.Load()
	if head == q.tail.Load() {
		return nil
	}
	slot := head & q.mask
	if !q.ready[slot].Load() {
		return nil
	}
	mb := q.slots[slot].Load()
	if !q.head.CompareAndSwap(head, head+1) {
		return nil
	}
	q.ready[slot].Store(false)
	mb.unlist()
	return mb
}

// Len returns a snapshot of the number of listed mailboxes.
func (q *ReadyQueue) Len() int {
	return int(q.tail.Load() - q.head.Load())
}

// Capacity returns the fixed slot count.
func (q *ReadyQueue) Capacity() int {
	return int(q.mask + 1)
}
