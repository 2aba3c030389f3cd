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

package tl2vec

import "github.com/alexandres/tl2vec/internal/randl"

type windowCallback func(center int32, context []int32)

// slider walks a sentence position by position, presenting each center
// token with the tokens around it. buf is reused between calls.
type slider struct {
	window  int
	dynamic bool
	buf     []int32
}

func (s *slider) slide(sent []int32, rl *randl.Stream, callback windowCallback) {
	for j, center := range sent {
		win := s.window
		// If we are using a dynamic window like word2vec, shrink it uniformly.
		if s.dynamic && win > 0 {
			win -= int(rl.NextF() * float64(win))
		}

		start := j - win
		if start < 0 {
			start = 0
		}
		end := j + win + 1
		if end > len(sent) {
			end = len(sent)
		}

		s.buf = s.buf[:0]
		s.buf = append(s.buf, sent[start:j]...)
		s.buf = append(s.buf, sent[j+1:end]...)
		if len(s.buf) == 0 {
			continue
		}
		callback(center, s.buf)
	}
}
