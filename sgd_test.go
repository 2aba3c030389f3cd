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

type fixedSampler struct {
	nodes []*Node
	pos   int
}

func (s *fixedSampler) sample(r *randl.Stream) *Node {
	n := s.nodes[s.pos%len(s.nodes)]
	s.pos++
	return n
}

func testParam(dim, negative int) Param {
	p := DefaultParam()
	p.VecDim = dim
	p.NegSample = negative
	return p
}

func TestNgSampPositiveOnly(t *testing.T) {
	tests := []struct {
		name       string
		activation string
		predict    func(float64) float64
	}{
		{"exp", ActivationExp, math.Exp},
		{"sigmoid", ActivationSigmoid, func(x float64) float64 { return 1 / (1 + math.Exp(-x)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testParam(2, 0)
			p.Activation = tt.activation
			s := newSGD(randl.New(0), p, nil, nil)

			tar := newArena(1, 2)
			tar[0].Out[0], tar[0].Out[1] = 0.5, -0.25
			in := []float64{0.2, 0.4}
			neu1e := []float64{0, 0}
			s.ngSamp(&tar[0], in, neu1e, nil, 0.1)

			score := 0.2*0.5 + 0.4*-0.25
			g := (1 - tt.predict(score)) * 0.1
			assert.InDelta(t, g*0.5, neu1e[0], 1e-12)
			assert.InDelta(t, g*-0.25, neu1e[1], 1e-12)
			assert.InDelta(t, 0.5+g*0.2, tar[0].Out[0], 1e-12)
			assert.InDelta(t, -0.25+g*0.4, tar[0].Out[1], 1e-12)
		})
	}
}

func TestNgSampFixedTargetUntouched(t *testing.T) {
	nodes := newArena(2, 3)
	nodes[0].Out[0] = 1
	nodes[0].Fixed = true
	nodes[1].Out[1] = 1
	nodes[1].Fixed = true
	s := newSGD(randl.New(0), testParam(3, 2), nil, nil)
	neu1e := make([]float64, 3)
	s.ngSamp(&nodes[0], []float64{1, 1, 1}, neu1e, &fixedSampler{nodes: []*Node{&nodes[1]}}, 0.5)

	assert.Equal(t, []float64{1, 0, 0}, nodes[0].Out)
	assert.Equal(t, []float64{0, 1, 0}, nodes[1].Out)
	assert.NotEqual(t, []float64{0, 0, 0}, neu1e)
}

func TestNgSampNegativeLabel(t *testing.T) {
	nodes := newArena(2, 1)
	s := newSGD(randl.New(0), testParam(1, 1), nil, nil)
	neu1e := []float64{0}
	s.ngSamp(&nodes[0], []float64{2}, neu1e, &fixedSampler{nodes: []*Node{&nodes[1]}}, 0.1)

	// exp(0) = 1: the positive trial is a no-op, the negative pushes away.
	assert.Equal(t, 0., nodes[0].Out[0])
	assert.InDelta(t, -0.1*2, nodes[1].Out[0], 1e-12)
}

func TestDrawNegativeRedraws(t *testing.T) {
	nodes := newArena(2, 1)
	s := newSGD(randl.New(0), testParam(1, 1), nil, nil)

	fs := &fixedSampler{nodes: []*Node{&nodes[0], &nodes[0], &nodes[1]}}
	assert.Same(t, &nodes[1], s.drawNegative(&nodes[0], fs))
	assert.Equal(t, 3, fs.pos)

	only := &fixedSampler{nodes: []*Node{&nodes[0]}}
	assert.Nil(t, s.drawNegative(&nodes[0], only))
	assert.Equal(t, maxNegRedraws, only.pos)

	assert.Nil(t, s.drawNegative(&nodes[0], &uniformDist{}))
}

func TestWindowUpdates(t *testing.T) {
	const dim = 4
	words := newArena(4, dim)
	r := randl.New(5)
	for i := range words {
		words[i].initIn(r)
		for k := range words[i].Out {
			words[i].Out[k] = 0.1
		}
	}
	words[3].Fixed = true
	docs := newDocSet([]string{"d"}, dim, r)
	lexic, topic, ok := docs.lookup("d")
	require.True(t, ok)

	fixedIn := copyVec(words[3].In)
	ctx1 := copyVec(words[1].In)
	lex := copyVec(lexic.In)

	p := testParam(dim, 0)
	p.Activation = ActivationSigmoid
	s := newSGD(randl.New(0), p, nil, nil)
	s.window(words, 0, []int32{1, 3}, lexic, topic, 0.05)

	assert.Equal(t, fixedIn, words[3].In)
	assert.NotEqual(t, ctx1, words[1].In)
	assert.NotEqual(t, lex, lexic.In)
	assert.NotEqual(t, make([]float64, dim), topic.Out)
	assert.Equal(t, make([]float64, dim), topic.In)
}

func TestSliderFixedWindow(t *testing.T) {
	s := &slider{window: 1}
	var got [][]int32
	var centers []int32
	s.slide([]int32{10, 11, 12}, randl.New(0), func(center int32, context []int32) {
		centers = append(centers, center)
		got = append(got, append([]int32(nil), context...))
	})
	assert.Equal(t, []int32{10, 11, 12}, centers)
	assert.Equal(t, [][]int32{{11}, {10, 12}, {11}}, got)
}

func TestSliderSkipsEmptyContext(t *testing.T) {
	calls := 0
	s := &slider{window: 3}
	s.slide([]int32{7}, randl.New(0), func(int32, []int32) { calls++ })
	assert.Zero(t, calls)

	s = &slider{window: 0}
	s.slide([]int32{1, 2, 3}, randl.New(0), func(int32, []int32) { calls++ })
	assert.Zero(t, calls)
}

func TestSliderDynamicWindow(t *testing.T) {
	s := &slider{window: 3, dynamic: true}
	sent := []int32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	for i := 0; i < 50; i++ {
		s.slide(sent, randl.New(i), func(center int32, context []int32) {
			assert.True(t, len(context) >= 1 && len(context) <= 6)
			for _, c := range context {
				assert.NotEqual(t, center, c)
				d := c - center
				assert.True(t, d >= -3 && d <= 3)
			}
		})
	}
}
