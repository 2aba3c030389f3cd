/*
 * Copyright (c) 2016 Salle, Alexandre <alex@alexsalle.com>
 * Author: Salle, Alexandre <alex@alexsalle.com>
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy of
 * this software and associated documentation files (the "Software"), to deal in
 * the Software without restriction, including without limitation the rights to
 * use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
 * the Software, and to permit persons to whom the Software is furnished to do so,
 * subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
 * FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
 * COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
 * IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
 * CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
 */

package randl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamReplaysPerSeed(t *testing.T) {
	a, b := New(3), New(3)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.NextR(), b.NextR())
		require.Equal(t, a.NextF(), b.NextF())
	}
}

func TestStreamSeedsDiffer(t *testing.T) {
	a, b := New(0), New(1)
	assert.NotEqual(t, a.NextR(), b.NextR())
}

func TestNextFRange(t *testing.T) {
	s := New(7)
	for i := 0; i < 10000; i++ {
		f := s.NextF()
		assert.True(t, f >= 0 && f < 1, "got %f", f)
	}
}

func TestIndexRange(t *testing.T) {
	tests := []struct {
		name string
		n    int
	}{
		{"one", 1},
		{"small", 7},
		{"table", 100000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(1)
			for i := 0; i < 1000; i++ {
				idx := s.Index(tt.n)
				assert.True(t, idx >= 0 && idx < tt.n)
			}
		})
	}
}
