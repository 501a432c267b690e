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

// Metric is a point-in-time snapshot of a fabric's activity counters.
type Metric struct {
	mailboxes    int64
	spawned      int64
	released     int64
	pushed       int64
	delivered    int64
	deadlettered int64
	expansions   int64
	ready        int
}

// Mailboxes returns the number of currently registered mailboxes.
func (m Metric) Mailboxes() int64 {
	return m.mailboxes
}

// Spawned returns the total number of mailboxes spawned.
func (m Metric) Spawned() int64 {
	return m.spawned
}

// Released returns the total number of mailboxes torn down.
func (m Metric) Released() int64 {
	return m.released
}

// Pushed returns the total number of messages pushed into mailboxes.
func (m Metric) Pushed() int64 {
	return m.pushed
}

// Delivered returns the total number of messages handed to user code.
func (m Metric) Delivered() int64 {
	return m.delivered
}

// Deadlettered returns the number of messages dropped into the deadletters
// sink during mailbox teardown.
func (m Metric) Deadlettered() int64 {
	return m.deadlettered
}

// Expansions returns the number of per-mailbox ring growth events.
func (m Metric) Expansions() int64 {
	return m.expansions
}

// Ready returns an approximate count of mailboxes listed on the ready queue.
func (m Metric) Ready() int {
	return m.ready
}
