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

// Package deadletter collects messages that were still pending in a mailbox
// when the mailbox was torn down. The sink is bounded and never blocks the
// teardown path: letters that do not fit are counted and dropped.
package deadletter

import (
	gods "github.com/Workiva/go-datastructures/queue"
	"go.uber.org/atomic"

	"github.com/loomyard/loom/log"
)

// DefaultCapacity is the sink capacity used when none is configured.
const DefaultCapacity = 1_000

// Letter is a message that could not be delivered because its recipient
// mailbox was being destroyed.
type Letter struct {
	// Recipient is the handle whose mailbox was torn down.
	Recipient uint32
	// Source is the sender handle.
	Source uint32
	// Session is the request/response correlator the sender attached.
	Session int32
	// Data is the undelivered payload.
	Data []byte
}

// Sink is a bounded in-process deadletters buffer backed by a ring buffer.
// Offer is safe for concurrent producers; Poll is intended for a single
// consumer draining the sink for inspection.
type Sink struct {
	buffer   *gods.RingBuffer
	capacity uint64
	logger   log.Logger
	dropped  atomic.Int64
}

// NewSink creates a deadletters sink.
func NewSink(opts ...Option) *Sink {
	sink := &Sink{
		capacity: DefaultCapacity,
		logger:   log.DiscardLogger,
	}
	for _, opt := range opts {
		opt.Apply(sink)
	}
	sink.buffer = gods.NewRingBuffer(sink.capacity)
	return sink
}

// Offer places the given letter into the sink without blocking. It returns
// false when the sink is full or disposed; the letter is then dropped and
// counted.
func (s *Sink) Offer(letter *Letter) bool {
	ok, err := s.buffer.Offer(letter)
	if err != nil || !ok {
		s.dropped.Inc()
		s.logger.Warnf("deadletters sink full, dropping letter from=%d to=%d", letter.Source, letter.Recipient)
		return false
	}
	return true
}

// Poll removes and returns the oldest letter in the sink. It returns false
// when the sink is empty.
func (s *Sink) Poll() (*Letter, bool) {
	if s.buffer.Len() == 0 {
		return nil, false
	}
	item, err := s.buffer.Get()
	if err != nil {
		return nil, false
	}
	letter, ok := item.(*Letter)
	return letter, ok
}

// Len returns the number of letters currently buffered.
func (s *Sink) Len() int {
	return int(s.buffer.Len())
}

// Dropped returns the number of letters rejected because the sink was full.
func (s *Sink) Dropped() int64 {
	return s.dropped.Load()
}

// Dispose releases the underlying buffer. The sink must not be used after
// Dispose returns.
func (s *Sink) Dispose() {
	s.buffer.Dispose()
}
