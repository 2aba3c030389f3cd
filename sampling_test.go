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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexandres/tl2vec/internal/randl"
)

func nodesWithFreq(freqs ...int64) []Node {
	nodes := newArena(len(freqs), 1)
	for i, f := range freqs {
		nodes[i].Freq = f
	}
	return nodes
}

func TestUnigramTableShares(t *testing.T) {
	const size = 100000
	nodes := nodesWithFreq(0, 1000, 300, 50, 7, 1)
	table := newUnigramTable(nodes, size, unigramPower)
	require.Len(t, table, size)

	counts := make([]int, len(nodes))
	for _, idx := range table {
		require.True(t, idx >= 0 && int(idx) < len(nodes))
		counts[idx]++
	}

	var total float64
	for _, n := range nodes {
		total += math.Pow(float64(n.Freq), unigramPower)
	}
	for i, n := range nodes {
		want := math.Pow(float64(n.Freq), unigramPower) / total
		assert.InDelta(t, want, float64(counts[i])/size, 1e-3, "node %d", i)
	}
	assert.Equal(t, 0, counts[0])
}

func TestUnigramTableContiguous(t *testing.T) {
	table := newUnigramTable(nodesWithFreq(10, 5, 1), 1000, unigramPower)
	for a := 1; a < len(table); a++ {
		assert.True(t, table[a] >= table[a-1])
	}
	assert.Equal(t, int32(2), table[len(table)-1])
}

func TestUnigramTableDegenerate(t *testing.T) {
	table := newUnigramTable(nodesWithFreq(0), 10, unigramPower)
	assert.Equal(t, make([]int32, 10), table)

	table = newUnigramTable(nodesWithFreq(0, 0, 0), 10, unigramPower)
	for _, idx := range table {
		assert.Equal(t, int32(2), idx)
	}
}

func TestUnigramDistSample(t *testing.T) {
	nodes := nodesWithFreq(0, 10, 10)
	d := &unigramDist{nodes, newUnigramTable(nodes, 1000, unigramPower)}
	r := randl.New(0)
	seen := map[*Node]int{}
	for i := 0; i < 2000; i++ {
		seen[d.sample(r)]++
	}
	assert.Zero(t, seen[&nodes[0]])
	assert.InDelta(t, 1000, seen[&nodes[1]], 150)
	assert.InDelta(t, 1000, seen[&nodes[2]], 150)
}

func TestUniformDist(t *testing.T) {
	assert.Nil(t, (&uniformDist{}).sample(randl.New(0)))

	nodes := nodesWithFreq(1, 1, 1, 1)
	d := &uniformDist{nodes}
	r := randl.New(3)
	counts := map[*Node]int{}
	for i := 0; i < 4000; i++ {
		counts[d.sample(r)]++
	}
	for i := range nodes {
		assert.InDelta(t, 1000, counts[&nodes[i]], 200)
	}
}
