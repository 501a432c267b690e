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
	"context"
	"runtime"
	"time"

	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/loomyard/loom/internal/ticker"
	"github.com/loomyard/loom/log"
)

// DefaultSliceSize is the number of messages a worker drains from one
// mailbox before relisting it, used when none is configured.
const DefaultSliceSize = 16

// DefaultIdleInterval is the default backoff interval idle workers wait on
// before probing the ready queue again.
const DefaultIdleInterval = time.Millisecond

// Handler consumes the messages of dispatched mailboxes. Receive runs on a
// dispatcher worker; at most one worker at a time drains a given mailbox, so
// Receive calls for one recipient never overlap. The handler may call
// mb.Lock to reserve the mailbox for a response session.
type Handler interface {
	Receive(mb *Mailbox, msg Message)
}

// HandlerFunc implements the Handler interface.
type HandlerFunc func(mb *Mailbox, msg Message)

// Receive implementation
func (f HandlerFunc) Receive(mb *Mailbox, msg Message) {
	f(mb, msg)
}

// Dispatcher runs a pool of workers that acquire mailboxes from the
// fabric's ready queue and drain them in bounded slices.
type Dispatcher struct {
	fabric       *Fabric
	handler      Handler
	workers      int
	sliceSize    int
	idleInterval time.Duration
	logger       log.Logger

	started atomic.Bool
	idle    *ticker.Ticker
	group   *errgroup.Group
	cancel  context.CancelFunc
}

// NewDispatcher creates a dispatcher draining the given fabric into the
// given handler.
func NewDispatcher(fabric *Fabric, handler Handler, opts ...DispatcherOption) (*Dispatcher, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	d := &Dispatcher{
		fabric:       fabric,
		handler:      handler,
		workers:      runtime.GOMAXPROCS(0),
		sliceSize:    DefaultSliceSize,
		idleInterval: DefaultIdleInterval,
		logger:       fabric.logger,
	}
	for _, opt := range opts {
		opt.Apply(d)
	}

	if d.workers < 1 {
		return nil, ErrInvalidWorkerCount
	}
	if d.sliceSize < 1 {
		return nil, ErrInvalidSliceSize
	}
	if d.idleInterval <= 0 {
		return nil, ErrInvalidIdleInterval
	}

	d.idle = ticker.New(d.idleInterval)
	return d, nil
}

// Start launches the worker pool. The workers run until Stop is called or
// the given context is canceled.
func (d *Dispatcher) Start(ctx context.Context) error {
	if !d.started.CompareAndSwap(false, true) {
		return ErrDispatcherStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.idle.Start()

	group, ctx := errgroup.WithContext(ctx)
	d.group = group
	for i := 0; i < d.workers; i++ {
		group.Go(func() error {
			d.run(ctx)
			return nil
		})
	}

	d.logger.Infof("dispatcher started with %d workers", d.workers)
	return nil
}

// Stop shuts the worker pool down and waits for the workers to finish their
// current slices, or for the given context to expire.
func (d *Dispatcher) Stop(ctx context.Context) error {
	if !d.started.CompareAndSwap(true, false) {
		return ErrDispatcherNotStarted
	}

	d.cancel()
	done := make(chan struct{})
	go func() {
		// workers never return errors; the group is used for lifecycle only
		_ = d.group.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	d.idle.Stop()
	d.logger.Info("dispatcher stopped")
	return nil
}

// Running returns true when the worker pool is up.
func (d *Dispatcher) Running() bool {
	return d.started.Load()
}

// run is a worker loop: acquire a mailbox, drain a slice, back off when the
// ready queue is empty.
func (d *Dispatcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		mb := d.fabric.ready.Pop()
		if mb == nil {
			select {
			case <-ctx.Done():
				return
			case <-d.idle.Ticks:
			}
			continue
		}
		d.dispatch(mb)
	}
}

// dispatch drains one bounded slice from an acquired mailbox, honoring a
// pending teardown before and after the slice, and relists the mailbox when
// the slice ends with work or a reservation outstanding. The empty pop that
// ends a drain decides atomically whether the worker keeps the mailbox: when
// it surrenders ownership the mailbox may already be relisted for another
// worker, so this worker stops touching it immediately.
func (d *Dispatcher) dispatch(mb *Mailbox) {
	if mb.Releasing() {
		d.teardown(mb)
		return
	}

	for i := 0; i < d.sliceSize; i++ {
		msg, ok, owned := mb.pop()
		if !ok {
			if !owned {
				return
			}
			break
		}
		d.deliver(mb, msg)
	}

	if mb.Releasing() {
		d.teardown(mb)
		return
	}
	mb.PushGlobal()
}

// deliver hands one message to the handler. A handler panic is contained to
// the message that caused it.
func (d *Dispatcher) deliver(mb *Mailbox, msg Message) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Errorf("handler panic on mailbox %#x: %v", mb.Handle(), r)
		}
	}()
	d.handler.Receive(mb, msg)
	d.fabric.delivered.Inc()
}

func (d *Dispatcher) teardown(mb *Mailbox) {
	dropped := mb.Release()
	if dropped > 0 {
		d.logger.Debugf("mailbox %#x released, %d pending messages dropped", mb.Handle(), dropped)
	}
}

// DispatcherOption is the interface that applies a configuration option to
// a Dispatcher.
type DispatcherOption interface {
	Apply(d *Dispatcher)
}

var _ DispatcherOption = DispatcherOptionFunc(nil)

// DispatcherOptionFunc implements the DispatcherOption interface.
type DispatcherOptionFunc func(d *Dispatcher)

// Apply applies the Dispatcher's option
func (f DispatcherOptionFunc) Apply(d *Dispatcher) {
	f(d)
}

// WithWorkers sets the number of dispatch workers.
func WithWorkers(workers int) DispatcherOption {
	return DispatcherOptionFunc(func(d *Dispatcher) {
		d.workers = workers
	})
}

// WithSliceSize sets how many messages a worker drains from one mailbox
// before relisting it.
func WithSliceSize(size int) DispatcherOption {
	return DispatcherOptionFunc(func(d *Dispatcher) {
		d.sliceSize = size
	})
}

// WithIdleInterval sets the backoff interval idle workers wait on before
// probing the ready queue again.
func WithIdleInterval(interval time.Duration) DispatcherOption {
	return DispatcherOptionFunc(func(d *Dispatcher) {
		d.idleInterval = interval
	})
}

// WithDispatcherLogger overrides the fabric logger for the dispatcher.
func WithDispatcherLogger(logger log.Logger) DispatcherOption {
	return DispatcherOptionFunc(func(d *Dispatcher) {
		d.logger = logger
	})
}
