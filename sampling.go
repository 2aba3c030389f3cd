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

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/alexandres/tl2vec/internal/randl"
)

const unigramPower = 0.75

// newUnigramTable lays out size slots over the sorted vocabulary, giving each
// node a contiguous run proportional to freq^power. The last node takes
// whatever rounding leaves over.
func newUnigramTable(nodes []Node, size int, power float64) []int32 {
	table := make([]int32, size)
	if len(nodes) == 0 {
		return table
	}
	weights := make([]float64, len(nodes))
	for i := range nodes {
		weights[i] = math.Pow(float64(nodes[i].Freq), power)
	}
	trainWordsPow := floats.Sum(weights)

	var cum float64
	var start int
	last := len(nodes) - 1
	for i := range nodes {
		end := size
		if i < last && trainWordsPow > 0 {
			cum += weights[i]
			end = int(cum / trainWordsPow * float64(size))
			if end > size {
				end = size
			}
		} else if i < last {
			end = 0
		}
		for a := start; a < end; a++ {
			table[a] = int32(i)
		}
		if end > start {
			start = end
		}
	}
	return table
}

// sampler draws a negative candidate.
type sampler interface {
	sample(r *randl.Stream) *Node
}

// unigramDist implements sampler over the word table.
type unigramDist struct {
	nodes []Node
	table []int32
}

func (d *unigramDist) sample(r *randl.Stream) *Node {
	return &d.nodes[d.table[r.Index(len(d.table))]]
}

// uniformDist implements sampler with equal weight per node; documents all
// occur once.
type uniformDist struct {
	nodes []Node
}

func (d *uniformDist) sample(r *randl.Stream) *Node {
	if len(d.nodes) == 0 {
		return nil
	}
	return &d.nodes[r.Index(len(d.nodes))]
}
