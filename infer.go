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
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/alexandres/tl2vec/corpus"
	"github.com/alexandres/tl2vec/internal/randl"
)

// InferUnnormalized learns lexical and topical vectors for the documents of
// c that were not part of training, keeping every trained vector frozen.
// Documents of c that were trained are answered with their trained vectors.
// Any failure is logged and reported as a nil result.
func (l *Learner) InferUnnormalized(c corpus.Corpus) (emb *DocEmbedding) {
	log := l.runLogger("infer")
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("failed to learn new doc vectors")
			emb = nil
		}
	}()
	emb, err := l.infer(c, log)
	if err != nil {
		log.WithError(err).Error("failed to learn new doc vectors")
		return nil
	}
	return emb
}

func (l *Learner) infer(c corpus.Corpus, log logrus.FieldLogger) (*DocEmbedding, error) {
	if !l.trained {
		return nil, ErrNotTrained
	}
	fdocs := corpus.Filter(c, func(d *corpus.Document) bool {
		_, known := l.trainDocs.index[d.ID]
		return !known
	})

	var ids []string
	seen := make(map[string]bool)
	var tknTotalInDocs int64
	err := corpus.ForEach(fdocs, func(d *corpus.Document) error {
		if !seen[d.ID] {
			seen[d.ID] = true
			ids = append(ids, d.ID)
		}
		for _, s := range d.Sentences {
			for _, tok := range s.Tokens {
				if _, ok := l.vocab.lookup(tok); ok {
					tknTotalInDocs++
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan documents: %w", err)
	}

	docs := newDocSet(ids, l.Param.VecDim, randl.New(1))
	if len(ids) > 0 {
		if err = l.descend(fdocs, docs, tknTotalInDocs, 1, 0, log); err != nil {
			return nil, fmt.Errorf("gradient descent: %w", err)
		}
	}

	emb := &DocEmbedding{
		Lexical: make(map[string][]float64, len(ids)),
		Topical: make(map[string][]float64, len(ids)),
	}
	for i, id := range docs.ids {
		emb.Lexical[id] = copyVec(docs.lexic[i].In)
		emb.Topical[id] = copyVec(docs.topic[i].Out)
	}

	err = corpus.ForEach(c, func(d *corpus.Document) error {
		if lexic, topic, ok := l.trainDocs.lookup(d.ID); ok {
			emb.Lexical[d.ID] = copyVec(lexic.In)
			emb.Topical[d.ID] = copyVec(topic.Out)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("merge trained documents: %w", err)
	}
	return emb, nil
}
