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
	"runtime"
	"sync/atomic"

	"github.com/loomyard/loom/deadletter"
)

// DefaultMailboxCapacity is the initial per-mailbox ring capacity used when
// none is configured. The ring doubles whenever it fills.
const DefaultMailboxCapacity = 64

// mailboxState tracks the mailbox's relationship to the ready queue and to
// a locked session.
type mailboxState int32

const (
	// stateOut means the mailbox is idle: not listed, no locked session.
	stateOut mailboxState = iota
	// stateQueued means the mailbox is listed on the ready queue, or held
	// by the worker that popped it there and is still draining it.
	stateQueued
	// stateDispatching means a worker acquired a session lock while
	// draining; the mailbox is not listed.
	stateDispatching
	// stateLocked means the mailbox is session-locked and unlisted;
	// publication is deferred until the matching response arrives.
	stateLocked
)

func (s mailboxState) String() string {
	switch s {
	case stateOut:
		return "out"
	case stateQueued:
		return "queued"
	case stateDispatching:
		return "dispatching"
	case stateLocked:
		return "locked"
	default:
		return "unknown"
	}
}

// Mailbox is the private message queue of one actor handle. Any number of
// producers may Push concurrently; at most one worker at a time drains it
// via Pop between acquiring it from the ready queue and relisting or
// releasing it.
type Mailbox struct {
	handle uint32
	fabric *Fabric

	mu          spinLock
	ring        []Message
	head        int
	tail        int
	state       mailboxState
	lockSession int32
	listed      bool
	released    bool
	dropping    bool
}

// newMailbox creates a mailbox in the queued state. The caller registers it
// and then lists it on the ready queue so the bootstrap message is
// dispatched.
func newMailbox(handle uint32, capacity int, fabric *Fabric) *Mailbox {
	return &Mailbox{
		handle: handle,
		fabric: fabric,
		ring:   make([]Message, capacity),
		state:  stateQueued,
	}
}

// Handle returns the owner actor's handle.
func (mb *Mailbox) Handle() uint32 {
	return mb.handle
}

// Len returns a snapshot of the number of pending messages.
func (mb *Mailbox) Len() int {
	mb.mu.Lock()
	n := mb.length()
	mb.mu.Unlock()
	return n
}

// IsEmpty reports whether the mailbox currently has no messages.
func (mb *Mailbox) IsEmpty() bool {
	return mb.Len() == 0
}

// Push delivers a message into the mailbox and lists the mailbox on the
// ready queue when it was idle. While the mailbox is reserved for a locked
// session, non-matching messages accumulate without publication; the
// message matching the locked session jumps ahead of everything pending and
// lifts the reservation.
func (mb *Mailbox) Push(msg Message) {
	mb.mu.Lock()
	if mb.lockSession != 0 && msg.Session == mb.lockSession {
		mb.pushHead(msg)
		mb.mu.Unlock()
		mb.fabric.pushed.Inc()
		return
	}

	mb.ring[mb.tail] = msg
	mb.tail++
	if mb.tail >= len(mb.ring) {
		mb.tail = 0
	}
	if mb.head == mb.tail {
		mb.expand()
	}

	if mb.lockSession == 0 && mb.state == stateOut {
		mb.state = stateQueued
		mb.publish()
	}
	mb.mu.Unlock()
	mb.fabric.pushed.Inc()
}

// Pop removes the oldest pending message. It returns false when the mailbox
// is empty; the empty pop may make the mailbox idle and give up the caller's
// possession of it. A successful pop never changes the state, so user code
// handling the last message may still take a session lock. Drain loops that
// need the possession outcome use pop directly.
func (mb *Mailbox) Pop() (Message, bool) {
	msg, ok, _ := mb.pop()
	return msg, ok
}

// pop additionally reports whether the caller still owns the mailbox. The
// empty pop ending a drain surrenders ownership by going idle, in the same
// critical section, so a concurrent producer can relist the mailbox for
// another worker; once owned comes back false the caller must not touch the
// mailbox again. A session reservation or an armed teardown keeps ownership
// with the caller, who then parks the mailbox via PushGlobal or drops it via
// Release.
func (mb *Mailbox) pop() (msg Message, ok bool, owned bool) {
	mb.mu.Lock()
	if mb.head == mb.tail {
		owned = true
		if mb.lockSession == 0 && !mb.released && mb.state == stateQueued {
			mb.state = stateOut
			owned = false
		}
		mb.mu.Unlock()
		return Message{}, false, owned
	}

	msg = mb.ring[mb.head]
	mb.ring[mb.head] = Message{}
	mb.head++
	if mb.head >= len(mb.ring) {
		mb.head = 0
	}
	mb.mu.Unlock()
	return msg, true, true
}

// Lock reserves the mailbox for the response carrying the given session.
// It must be called by the worker currently draining the mailbox. Locking
// an already-locked or unqueued mailbox is a programming error.
func (mb *Mailbox) Lock(session int32) {
	if session == 0 {
		panic("fabric: cannot lock a mailbox with the zero session")
	}
	mb.mu.Lock()
	if mb.lockSession != 0 {
		locked := mb.lockSession
		mb.mu.Unlock()
		panic(fmt.Sprintf("fabric: mailbox %#x is already locked by session %d", mb.handle, locked))
	}
	if mb.state != stateQueued {
		state := mb.state
		mb.mu.Unlock()
		panic(fmt.Sprintf("fabric: cannot lock mailbox %#x in state %s", mb.handle, state))
	}
	mb.state = stateDispatching
	mb.lockSession = session
	mb.mu.Unlock()
}

// PushGlobal relists the mailbox after a dispatch slice. A session lock
// acquired during the slice is promoted instead: the mailbox stays off the
// ready queue until the matching response arrives. Relisting a mailbox that
// went idle is a programming error.
func (mb *Mailbox) PushGlobal() {
	mb.mu.Lock()
	if mb.state == stateOut {
		mb.mu.Unlock()
		panic(fmt.Sprintf("fabric: mailbox %#x relisted while idle", mb.handle))
	}
	if mb.state == stateDispatching {
		// the session lock was taken during this slice
		mb.state = stateLocked
	}
	if mb.lockSession == 0 {
		mb.state = stateQueued
		mb.publish()
	}
	mb.mu.Unlock()
}

// MarkRelease arms the mailbox for teardown: the next Release drains and
// destroys it. The handle collaborator must have unregistered the mailbox
// first so no new Push can reach it. Marking twice is a programming error.
func (mb *Mailbox) MarkRelease() {
	mb.mu.Lock()
	if mb.released {
		mb.mu.Unlock()
		panic(fmt.Sprintf("fabric: mailbox %#x marked for release twice", mb.handle))
	}
	mb.released = true
	mb.mu.Unlock()
}

// Release finishes a dispatch slice on a mailbox whose teardown may have
// been requested. When armed by MarkRelease it drains every remaining
// message, surrenders multicast packets to the multicast dispatcher, offers
// the rest to the deadletters sink, and returns the drained count. An
// unarmed mailbox is relisted and stays live; the return value is then zero.
func (mb *Mailbox) Release() int {
	mb.mu.Lock()
	if !mb.released {
		if mb.state == stateDispatching {
			mb.state = stateLocked
		}
		if mb.lockSession == 0 {
			mb.state = stateQueued
			mb.publish()
		}
		mb.mu.Unlock()
		return 0
	}
	if mb.dropping {
		// teardown already claimed on another path
		mb.mu.Unlock()
		return 0
	}
	mb.dropping = true
	mb.mu.Unlock()
	return mb.dropQueue()
}

// Releasing reports whether teardown has been requested.
func (mb *Mailbox) Releasing() bool {
	mb.mu.Lock()
	released := mb.released
	mb.mu.Unlock()
	return released
}

// publish lists the mailbox on the ready queue unless it is already listed.
// The caller holds the mailbox lock.
func (mb *Mailbox) publish() {
	if mb.listed {
		return
	}
	mb.listed = true
	mb.fabric.ready.Push(mb)
}

// unlist records that a worker took the mailbox off the ready queue. Called
// by ReadyQueue.Pop on the consumer side.
func (mb *Mailbox) unlist() {
	mb.mu.Lock()
	mb.listed = false
	mb.mu.Unlock()
}

// idle reports whether the mailbox drained to the idle state.
func (mb *Mailbox) idle() bool {
	mb.mu.Lock()
	out := mb.state == stateOut
	mb.mu.Unlock()
	return out
}

func (mb *Mailbox) length() int {
	if mb.tail >= mb.head {
		return mb.tail - mb.head
	}
	return mb.tail + len(mb.ring) - mb.head
}

// pushHead prepends the response matching the locked session and lifts the
// reservation. A mailbox parked in the locked state goes back on the ready
// queue; a mailbox still mid-slice is left for its worker to relist. The
// caller holds the mailbox lock.
func (mb *Mailbox) pushHead(msg Message) {
	head := mb.head - 1
	if head < 0 {
		head = len(mb.ring) - 1
	}
	if head == mb.tail {
		mb.expandHead()
		head = len(mb.ring) - 1
	}
	mb.ring[head] = msg
	mb.head = head

	switch mb.state {
	case stateLocked:
		mb.state = stateQueued
		mb.publish()
	case stateDispatching:
		// the owning worker relists via PushGlobal
	default:
		panic(fmt.Sprintf("fabric: locked mailbox %#x in state %s", mb.handle, mb.state))
	}
	mb.lockSession = 0
}

// expand doubles the ring when an append filled it. Messages are copied in
// logical order to the front of the new ring. The caller holds the mailbox
// lock; head equals tail and every slot is live.
func (mb *Mailbox) expand() {
	old := mb.ring
	grown := make([]Message, len(old)*2)
	for i := 0; i < len(old); i++ {
		grown[i] = old[(mb.head+i)%len(old)]
	}
	mb.head = 0
	mb.tail = len(old)
	mb.ring = grown
	mb.fabric.expansions.Inc()
}

// expandHead doubles the ring for a head-side insertion, leaving the slot
// preceding the logical front at the end of the new ring. The caller holds
// the mailbox lock; the ring holds len-1 live messages.
func (mb *Mailbox) expandHead() {
	old := mb.ring
	grown := make([]Message, len(old)*2)
	count := len(old) - 1
	for i := 0; i < count; i++ {
		grown[i] = old[(mb.head+i)%len(old)]
	}
	mb.head = 0
	mb.tail = count
	mb.ring = grown
	mb.fabric.expansions.Inc()
}

// dropQueue drains and destroys an armed mailbox. The mailbox is no longer
// reachable for new pushes, so the remaining messages are walked without
// the lock. Multicast packets go to the multicast dispatcher; everything
// else is offered to the deadletters sink when one is configured.
func (mb *Mailbox) dropQueue() int {
	drained := 0
	for mb.head != mb.tail {
		msg := mb.ring[mb.head]
		mb.ring[mb.head] = Message{}
		mb.head++
		if mb.head >= len(mb.ring) {
			mb.head = 0
		}
		drained++

		if msg.Type() == PayloadMulticast {
			if msg.packet == nil {
				panic(fmt.Sprintf("fabric: multicast message without packet in mailbox %#x", mb.handle))
			}
			mb.fabric.dispatchMulticast(msg.packet)
			continue
		}
		if sink := mb.fabric.deadletters; sink != nil {
			sink.Offer(&deadletter.Letter{
				Recipient: mb.handle,
				Source:    msg.Source,
				Session:   msg.Session,
				Data:      msg.Data,
			})
			mb.fabric.deadlettered.Inc()
		}
	}
	mb.ring = nil
	mb.state = stateOut
	mb.fabric.releasedBoxes.Inc()
	return drained
}

// spinLock is a test-and-set mutual exclusion primitive. Mailbox critical
// sections are short and allocation-free outside of ring growth, so
// spinning beats parking.
type spinLock struct {
	state atomic.Uint32
}

func (l *spinLock) Lock() {
	for !l.state.CompareAndSwap(0, 1) {
		runtime.Gosched()
	}
}

func (l *spinLock) Unlock() {
	l.state.Store(0)
}
