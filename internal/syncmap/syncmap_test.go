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

package syncmap

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncMap(t *testing.T) {
	t.Run("With Set/Get/Delete", func(t *testing.T) {
		sm := New[string, int]()
		sm.Set("one", 1)
		sm.Set("two", 2)

		value, ok := sm.Get("one")
		require.True(t, ok)
		assert.Equal(t, 1, value)
		assert.Equal(t, 2, sm.Len())

		sm.Delete("one")
		_, ok = sm.Get("one")
		assert.False(t, ok)
		assert.Equal(t, 1, sm.Len())
	})

	t.Run("With SetIfAbsent", func(t *testing.T) {
		sm := New[string, int]()
		require.True(t, sm.SetIfAbsent("one", 1))
		require.False(t, sm.SetIfAbsent("one", 10))
		value, ok := sm.Get("one")
		require.True(t, ok)
		assert.Equal(t, 1, value)
	})

	t.Run("With Range", func(t *testing.T) {
		sm := New[int, int]()
		for i := 0; i < 10; i++ {
			sm.Set(i, i*i)
		}
		seen := 0
		sm.Range(func(k, v int) {
			assert.Equal(t, k*k, v)
			seen++
		})
		assert.Equal(t, 10, seen)
	})

	t.Run("With concurrent writers", func(t *testing.T) {
		sm := New[int, int]()
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(base int) {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					sm.Set(base*100+j, j)
				}
			}(i)
		}
		wg.Wait()
		assert.Equal(t, 800, sm.Len())
	})
}
