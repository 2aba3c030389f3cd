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

// Node is one row of the vector store: a vocabulary token or a document
// channel entry. In and Out are views into an arena shared by all nodes of the
// same set. A Fixed node is never written by the gradient engine.
type Node struct {
	Token      string
	Freq       int64
	In         []float64
	Out        []float64
	SampleProb float64
	Fixed      bool
}

// newArena allocates n nodes whose vectors are laid out contiguously, input
// then output per node. Vectors start at zero and every token is kept by
// sub-sampling.
func newArena(n, dim int) []Node {
	nodes := make([]Node, n)
	mem := make([]float64, 2*n*dim)
	for i := range nodes {
		off := 2 * i * dim
		nodes[i].In = mem[off : off+dim : off+dim]
		nodes[i].Out = mem[off+dim : off+2*dim : off+2*dim]
		nodes[i].SampleProb = 1
	}
	return nodes
}

func (n *Node) initIn(r *randl.Stream) {
	dim := float64(len(n.In))
	for k := range n.In {
		n.In[k] = (r.NextF() - 0.5) / dim
	}
}

// docSet holds the two channel entries of a group of documents. Lexical
// entries train their input vector, topical entries their output vector.
type docSet struct {
	index map[string]int
	ids   []string
	lexic []Node
	topic []Node
}

func newDocSet(ids []string, dim int, r *randl.Stream) *docSet {
	s := &docSet{
		index: make(map[string]int, len(ids)),
		ids:   ids,
		lexic: newArena(len(ids), dim),
		topic: newArena(len(ids), dim),
	}
	for i, id := range ids {
		s.index[id] = i
		s.lexic[i].Token, s.lexic[i].Freq = id, 1
		s.topic[i].Token, s.topic[i].Freq = id, 1
		s.lexic[i].initIn(r)
	}
	return s
}

func (s *docSet) lookup(id string) (lexic, topic *Node, ok bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, nil, false
	}
	return &s.lexic[i], &s.topic[i], true
}

func (s *docSet) fix() {
	for i := range s.lexic {
		s.lexic[i].Fixed = true
		s.topic[i].Fixed = true
	}
}

func copyVec(v []float64) []float64 {
	return append([]float64(nil), v...)
}
