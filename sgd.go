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

	"github.com/viterin/vek"
	"gonum.org/v1/gonum/floats"

	"github.com/alexandres/tl2vec/internal/randl"
)

// A negative draw equal to the positive target is redrawn at most this many
// times before the trial is dropped.
const maxNegRedraws = 16

type activationFunc func(score float64) float64

func expActivation(score float64) float64 {
	return math.Exp(score)
}

func sigmoidActivation(score float64) float64 {
	return 1 / (1 + math.Exp(-score))
}

func activationFor(name string) activationFunc {
	if name == ActivationSigmoid {
		return sigmoidActivation
	}
	return expActivation
}

// sgd is the per-worker half of the gradient engine. bfIn and bfNeu1e are
// scratch buffers owned by a single worker.
type sgd struct {
	rl         *randl.Stream
	negative   int
	activation activationFunc
	wordNeg    sampler
	docNeg     sampler
	bfIn       []float64
	bfNeu1e    []float64
}

func newSGD(rl *randl.Stream, p Param, wordNeg, docNeg sampler) *sgd {
	return &sgd{
		rl:         rl,
		negative:   p.NegSample,
		activation: activationFor(p.Activation),
		wordNeg:    wordNeg,
		docNeg:     docNeg,
		bfIn:       make([]float64, p.VecDim),
		bfNeu1e:    make([]float64, p.VecDim),
	}
}

func zero(v []float64) {
	for i := range v {
		v[i] = 0
	}
}

// window runs the lexical then the topical update for one center position.
// context holds indexes into words and must not be empty.
func (s *sgd) window(words []Node, center int32, context []int32, docLexic, docTopic *Node, alpha float64) {
	in, neu1e := s.bfIn, s.bfNeu1e

	// lexical
	zero(in)
	zero(neu1e)
	for _, c := range context {
		vek.Add_Inplace(in, words[c].In)
	}
	vek.Add_Inplace(in, docLexic.In)
	vek.DivNumber_Inplace(in, float64(len(context)+1))
	s.ngSamp(&words[center], in, neu1e, s.wordNeg, alpha)
	for _, c := range context {
		if !words[c].Fixed {
			vek.Add_Inplace(words[c].In, neu1e)
		}
	}
	if !docLexic.Fixed {
		vek.Add_Inplace(docLexic.In, neu1e)
	}

	// topical
	zero(in)
	zero(neu1e)
	for _, c := range context {
		vek.Add_Inplace(in, words[c].In)
	}
	vek.DivNumber_Inplace(in, float64(len(context)))
	s.ngSamp(docTopic, in, neu1e, s.docNeg, alpha)
	for _, c := range context {
		if !words[c].Fixed {
			vek.Add_Inplace(words[c].In, neu1e)
		}
	}
}

// ngSamp trains tar as the positive output against negative draws from neg,
// accumulating the input-side error into neu1e.
func (s *sgd) ngSamp(tar *Node, in, neu1e []float64, neg sampler, alpha float64) {
	for i := 0; i < s.negative+1; i++ {
		var label float64
		var out *Node
		if i == 0 {
			label = 1
			out = tar
		} else {
			out = s.drawNegative(tar, neg)
			if out == nil {
				continue
			}
		}
		f := s.activation(vek.Dot(in, out.Out))
		g := (label - f) * alpha
		floats.AddScaled(neu1e, g, out.Out)
		if !out.Fixed {
			floats.AddScaled(out.Out, g, in)
		}
	}
}

func (s *sgd) drawNegative(tar *Node, neg sampler) *Node {
	for r := 0; r < maxNegRedraws; r++ {
		n := neg.sample(s.rl)
		if n == nil {
			return nil
		}
		if n != tar {
			return n
		}
	}
	return nil
}
