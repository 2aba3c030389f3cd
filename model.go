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

// TokenVector is one exported word vector.
type TokenVector struct {
	Token  string    `json:"token"`
	Vector []float32 `json:"vector"`
}

// WordEmbedding is the exported vocabulary in frequency order together with
// the JSON snapshot of the parameters it was trained with.
type WordEmbedding struct {
	Vocab []TokenVector `json:"vocab"`
	Param string        `json:"param"`
}

// Dim is the vector length, 0 for an empty embedding.
func (e *WordEmbedding) Dim() int {
	if len(e.Vocab) == 0 {
		return 0
	}
	return len(e.Vocab[0].Vector)
}

// DocEmbedding maps document ids to their lexical and topical vectors.
type DocEmbedding struct {
	Lexical map[string][]float64 `json:"lexical"`
	Topical map[string][]float64 `json:"topical"`
}

// Produce exports the trained word input vectors.
func (l *Learner) Produce() (*WordEmbedding, error) {
	if !l.trained {
		return nil, ErrNotTrained
	}
	emb := &WordEmbedding{Vocab: make([]TokenVector, len(l.vocab.nodes))}
	for i := range l.vocab.nodes {
		n := &l.vocab.nodes[i]
		v := make([]float32, len(n.In))
		for k, x := range n.In {
			v[k] = float32(x)
		}
		emb.Vocab[i] = TokenVector{n.Token, v}
	}
	param, err := l.Param.Snapshot()
	if err != nil {
		l.logger().WithError(err).Error("failed to serialize the parameters")
	}
	emb.Param = param
	return emb, nil
}

// ProduceDocEmbdUnnormalized exports the trained document vectors of both
// channels.
func (l *Learner) ProduceDocEmbdUnnormalized() (*DocEmbedding, error) {
	if !l.trained {
		return nil, ErrNotTrained
	}
	docs := l.trainDocs
	emb := &DocEmbedding{
		Lexical: make(map[string][]float64, len(docs.ids)),
		Topical: make(map[string][]float64, len(docs.ids)),
	}
	for i, id := range docs.ids {
		emb.Lexical[id] = copyVec(docs.lexic[i].In)
		emb.Topical[id] = copyVec(docs.topic[i].Out)
	}
	return emb, nil
}
