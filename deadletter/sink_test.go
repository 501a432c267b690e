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
	"github.com/stretchr/testify/require"
)

func TestSink(t *testing.T) {
	t.Run("With Offer and Poll", func(t *testing.T) {
		sink := NewSink(WithCapacity(4))
		defer sink.Dispose()

		require.True(t, sink.Offer(&Letter{Recipient: 1, Source: 2, Data: []byte("a")}))
		require.True(t, sink.Offer(&Letter{Recipient: 1, Source: 2, Data: []byte("b")}))
		assert.Equal(t, 2, sink.Len())

		letter, ok := sink.Poll()
		require.True(t, ok)
		assert.Equal(t, []byte("a"), letter.Data)

		letter, ok = sink.Poll()
		require.True(t, ok)
		assert.Equal(t, []byte("b"), letter.Data)

		_, ok = sink.Poll()
		assert.False(t, ok)
	})

	t.Run("With overflow", func(t *testing.T) {
		sink := NewSink(WithCapacity(2))
		defer sink.Dispose()

		require.True(t, sink.Offer(&Letter{Data: []byte("a")}))
		require.True(t, sink.Offer(&Letter{Data: []byte("b")}))
		require.False(t, sink.Offer(&Letter{Data: []byte("c")}))
		assert.Equal(t, int64(1), sink.Dropped())
		assert.Equal(t, 2, sink.Len())
	})
}
