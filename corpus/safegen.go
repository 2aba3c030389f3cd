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

package corpus

import (
	"io"
	"sync"
)

// SafeGen hands out documents to concurrent consumers. Every document of
// every epoch is handed out exactly once; only claiming a batch is
// serialized.
type SafeGen struct {
	mu        sync.Mutex
	c         Corpus
	it        Iterator
	batchSize int
	epoch     int
	epochs    int
	done      bool
	err       error
}

// NewSafeGen walks c epochs times, handing out batchSize documents per claim.
func NewSafeGen(c Corpus, batchSize, epochs int) *SafeGen {
	if batchSize < 1 {
		batchSize = 1
	}
	return &SafeGen{c: c, batchSize: batchSize, epochs: epochs}
}

// claim appends up to batchSize documents to buf. An empty result means the
// generator is exhausted.
func (g *SafeGen) claim(buf []*Document) ([]*Document, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return buf, g.err
	}
	for !g.done && len(buf) < g.batchSize {
		if g.it == nil {
			if g.epoch >= g.epochs {
				g.done = true
				break
			}
			it, err := g.c.Iterator()
			if err != nil {
				g.fail(err)
				return buf, err
			}
			g.it = it
		}
		d, err := g.it.Next()
		if err == io.EOF {
			err = g.it.Close()
			g.it = nil
			g.epoch++
			if err != nil {
				g.fail(err)
				return buf, err
			}
			continue
		}
		if err != nil {
			g.fail(err)
			return buf, err
		}
		buf = append(buf, d)
	}
	return buf, nil
}

func (g *SafeGen) fail(err error) {
	g.err = err
	g.done = true
	if g.it != nil {
		g.it.Close()
		g.it = nil
	}
}

// Epoch reports the number of completed passes.
func (g *SafeGen) Epoch() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.epoch
}

// Sub returns a private lazy sequence for one consumer.
func (g *SafeGen) Sub() *Sub {
	return &Sub{g: g, batch: make([]*Document, 0, g.batchSize)}
}

// Sub is one consumer's view of a SafeGen. It is not safe for concurrent use.
type Sub struct {
	g     *SafeGen
	batch []*Document
	pos   int
	err   error
	done  bool
}

// Next returns the next document, or false once the generator is exhausted
// or failed; check Err afterwards.
func (s *Sub) Next() (*Document, bool) {
	if s.pos >= len(s.batch) {
		if s.done {
			return nil, false
		}
		s.batch, s.err = s.g.claim(s.batch[:0])
		s.pos = 0
		if s.err != nil || len(s.batch) == 0 {
			s.done = true
			return nil, false
		}
	}
	d := s.batch[s.pos]
	s.pos++
	return d, true
}

func (s *Sub) Err() error {
	return s.err
}
