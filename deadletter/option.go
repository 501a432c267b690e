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

package deadletter

import "github.com/loomyard/loom/log"

// Option is the interface that applies a Sink option.
type Option interface {
	// Apply sets the Option value of a Sink.
	Apply(sink *Sink)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(sink *Sink)

// Apply applies the Sink's option
func (f OptionFunc) Apply(sink *Sink) {
	f(sink)
}

// WithLogger sets the custom logger
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(sink *Sink) {
		sink.logger = logger
	})
}

// WithCapacity specifies a fixed capacity for the sink.
func WithCapacity(capacity uint64) Option {
	return OptionFunc(func(sink *Sink) {
		if capacity > 0 {
			sink.capacity = capacity
		}
	})
}
