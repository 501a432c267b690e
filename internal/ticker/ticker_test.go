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

package ticker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicker(t *testing.T) {
	t.Run("With Start and Stop", func(t *testing.T) {
		ticker := New(time.Millisecond)
		require.False(t, ticker.Ticking())
		ticker.Start()
		require.True(t, ticker.Ticking())

		select {
		case <-ticker.Ticks:
		case <-time.After(time.Second):
			t.Fatal("expected a tick")
		}

		ticker.Stop()
		assert.False(t, ticker.Ticking())
	})

	t.Run("With invalid intervals", func(t *testing.T) {
		assert.Panics(t, func() { New(0) })
	})

	t.Run("With double Start", func(t *testing.T) {
		ticker := New(time.Millisecond)
		ticker.Start()
		ticker.Start()
		require.True(t, ticker.Ticking())
		ticker.Stop()
		ticker.Stop()
		assert.False(t, ticker.Ticking())
	})
}
