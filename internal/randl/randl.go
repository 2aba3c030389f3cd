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

// Package randl provides the per-worker random stream used by the trainer.
// A Stream is not safe for concurrent use; each worker owns exactly one.
package randl

import "math/rand"

type Stream struct {
	r *rand.Rand
}

// New returns a stream seeded with the worker index so that a run with the
// same worker count and document order replays the same draws.
func New(seed int) *Stream {
	return &Stream{rand.New(rand.NewSource(int64(seed)))}
}

// NextF returns a uniform float in [0,1).
func (s *Stream) NextF() float64 {
	return s.r.Float64()
}

// NextR returns 64 random bits.
func (s *Stream) NextR() uint64 {
	return s.r.Uint64()
}

// Index draws an index in [0,n) from the upper bits of NextR, the way the
// negative samplers address their tables. n must be positive.
func (s *Stream) Index(n int) int {
	return int((s.NextR() >> 16) % uint64(n))
}
