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
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/loomyard/loom/log"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// newTestFabric creates a fabric with a discard logger and the given extra
// options.
func newTestFabric(t *testing.T, opts ...Option) *Fabric {
	t.Helper()
	opts = append([]Option{WithLogger(log.DiscardLogger)}, opts...)
	f, err := New(opts...)
	require.NoError(t, err)
	require.NotNil(t, f)
	return f
}

// spawnAcquired spawns a mailbox and takes it off the ready queue, putting
// the caller in the position of a worker that just acquired it.
func spawnAcquired(t *testing.T, f *Fabric) *Mailbox {
	t.Helper()
	mb, err := f.Spawn()
	require.NoError(t, err)
	require.Same(t, mb, f.Ready().Pop())
	return mb
}
