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

// Package pool runs a fixed number of indexed workers and joins them,
// surfacing the first fatal error.
package pool

import (
	"context"
	"fmt"
	"runtime/debug"

	"golang.org/x/sync/errgroup"
)

// Worker is the body of one pool thread. The context is cancelled as soon
// as any sibling fails.
type Worker func(ctx context.Context, index int) error

type Pool struct {
	size int
}

func New(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{size}
}

func (p *Pool) Size() int {
	return p.size
}

// Group is a started set of workers.
type Group struct {
	g *errgroup.Group
}

// Start launches the workers with indexes 0..size-1.
func (p *Pool) Start(ctx context.Context, w Worker) *Group {
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < p.size; i++ {
		index := i
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("worker %d panicked: %v\n%s", index, r, debug.Stack())
				}
			}()
			return w(gctx, index)
		})
	}
	return &Group{g}
}

// Wait blocks until every worker returned and reports the first error.
func (g *Group) Wait() error {
	return g.g.Wait()
}

// Run is Start followed by Wait.
func (p *Pool) Run(ctx context.Context, w Worker) error {
	return p.Start(ctx, w).Wait()
}
