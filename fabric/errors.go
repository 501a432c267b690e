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

import "errors"

var (
	// ErrInvalidMailboxCapacity is returned when the configured initial
	// mailbox capacity is not a positive integer.
	ErrInvalidMailboxCapacity = errors.New("mailbox capacity must be positive")

	// ErrInvalidReadyQueueCapacity is returned when the configured ready
	// queue capacity is not a positive power of two.
	ErrInvalidReadyQueueCapacity = errors.New("ready queue capacity must be a positive power of two")

	// ErrInvalidNode is returned when the node identity does not fit the
	// bits above HandleRemoteShift.
	ErrInvalidNode = errors.New("node identity does not fit in a handle")

	// ErrInvalidWorkerCount is returned when a dispatcher is configured
	// with no workers.
	ErrInvalidWorkerCount = errors.New("worker count must be positive")

	// ErrInvalidSliceSize is returned when a dispatcher is configured with
	// a non-positive dispatch slice.
	ErrInvalidSliceSize = errors.New("dispatch slice must be positive")

	// ErrInvalidIdleInterval is returned when a dispatcher is configured
	// with a non-positive idle backoff interval.
	ErrInvalidIdleInterval = errors.New("idle interval must be positive")

	// ErrNilHandler is returned when a dispatcher is created without a
	// message handler.
	ErrNilHandler = errors.New("handler is required")

	// ErrDispatcherStarted is returned when starting a dispatcher that is
	// already running.
	ErrDispatcherStarted = errors.New("dispatcher is already started")

	// ErrDispatcherNotStarted is returned when stopping a dispatcher that
	// has not been started.
	ErrDispatcherNotStarted = errors.New("dispatcher is not started")

	// ErrHandleNotFound is returned when a handle has no registered
	// mailbox.
	ErrHandleNotFound = errors.New("handle is not registered")

	// ErrNameTaken is returned when binding a service name that is already
	// bound to another handle.
	ErrNameTaken = errors.New("service name is already bound")

	// ErrHandlesExhausted is returned when every per-node handle value is
	// in use.
	ErrHandlesExhausted = errors.New("handle space is exhausted")
)
