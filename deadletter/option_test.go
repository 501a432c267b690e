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

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/loomyard/loom/log"
)

func TestOptions(t *testing.T) {
	testCases := []struct {
		name     string
		option   Option
		expected Sink
	}{
		{
			name:     "WithLogger",
			option:   WithLogger(log.DefaultLogger),
			expected: Sink{logger: log.DefaultLogger},
		},
		{
			name:     "WithCapacity",
			option:   WithCapacity(10),
			expected: Sink{capacity: 10},
		},
		{
			name:     "WithZeroCapacity",
			option:   WithCapacity(0),
			expected: Sink{},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var sink Sink
			tc.option.Apply(&sink)
			assert.Equal(t, tc.expected, sink)
		})
	}
}
