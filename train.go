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
	"context"
	"math"
	"sync/atomic"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	"github.com/sirupsen/logrus"

	"github.com/alexandres/tl2vec/corpus"
	"github.com/alexandres/tl2vec/internal/pool"
	"github.com/alexandres/tl2vec/internal/randl"
)

const (
	tokenCacheSize = 4096
	minAlphaRatio  = 1e-5
)

// progressState is shared by all workers of one run. Writers may overwrite
// each other; only visibility is required.
type progressState struct {
	tknCurrent    atomic.Int64
	tknLastUpdate atomic.Int64
	alphaBits     atomic.Uint64
}

func (s *progressState) alpha() float64 {
	return math.Float64frombits(s.alphaBits.Load())
}

func (s *progressState) setAlpha(a float64) {
	s.alphaBits.Store(math.Float64bits(a))
}

// run is one gradient descent over a corpus.
type run struct {
	l        *Learner
	log      logrus.FieldLogger
	docs     *docSet
	wordNeg  sampler
	docNeg   sampler
	total    int64 // tokens over all epochs
	interval int64
	state    progressState
}

// updateAlpha anneals the learning rate once more than interval tokens
// passed since the last update. Several workers may do so at once.
func (r *run) updateAlpha() {
	cur := r.state.tknCurrent.Load()
	if cur-r.state.tknLastUpdate.Load() <= r.interval {
		return
	}
	init := r.l.Param.InitAlpha
	alpha := init * (1 - float64(cur)/float64(r.total+1))
	if alpha < init*minAlphaRatio {
		alpha = init * minAlphaRatio
	}
	r.state.setAlpha(alpha)
	if r.l.Debug {
		r.l.progress().Report(cur, alpha)
	}
	r.state.tknLastUpdate.Store(cur)
}

// worker owns everything a pool thread touches privately.
type worker struct {
	r      *run
	rl     *randl.Stream
	sgd    *sgd
	slider slider
	cache  *simplelru.LRU[string, int32]
	clean  []int32
}

func (r *run) newWorker(index int) *worker {
	rl := randl.New(index)
	cache, _ := simplelru.NewLRU[string, int32](tokenCacheSize, nil)
	return &worker{
		r:      r,
		rl:     rl,
		sgd:    newSGD(rl, r.l.Param, r.wordNeg, r.docNeg),
		slider: slider{window: r.l.Param.Window, dynamic: r.l.Param.DynamicWindow},
		cache:  cache,
	}
}

// lookup maps a raw token to its vocabulary index, -1 if unknown.
func (w *worker) lookup(tok string) int32 {
	if idx, ok := w.cache.Get(tok); ok {
		return idx
	}
	idx := int32(-1)
	if i, ok := w.r.l.vocab.lookup(tok); ok {
		idx = int32(i)
	}
	w.cache.Add(tok, idx)
	return idx
}

func (w *worker) document(doc *corpus.Document) {
	words := w.r.l.vocab.nodes
	for _, sent := range doc.Sentences {
		w.r.updateAlpha()

		// dictionary lookup & sub-sampling
		w.clean = w.clean[:0]
		var mapped int64
		for _, tok := range sent.Tokens {
			idx := w.lookup(tok)
			if idx < 0 {
				continue
			}
			mapped++
			if words[idx].SampleProb >= w.rl.NextF() {
				w.clean = append(w.clean, idx)
			}
		}
		w.r.state.tknCurrent.Add(mapped)

		docLexic, docTopic, ok := w.r.docs.lookup(doc.ID)
		if !ok {
			w.r.log.WithField("doc", doc.ID).Error("doc node not found, skipping document")
			return
		}

		alpha := w.r.state.alpha()
		w.slider.slide(w.clean, w.rl, func(center int32, context []int32) {
			w.sgd.window(words, center, context, docLexic, docTopic, alpha)
		})
	}
}

// descend runs epochs passes of the gradient engine over c on the worker
// pool. numTkns is the in-vocabulary token count of one pass.
func (l *Learner) descend(c corpus.Corpus, docs *docSet, numTkns int64, epochs int, interval int64, log logrus.FieldLogger) error {
	r := &run{
		l:        l,
		log:      log,
		docs:     docs,
		wordNeg:  &unigramDist{l.vocab.nodes, l.table},
		docNeg:   &uniformDist{l.trainDocs.topic},
		total:    numTkns * int64(epochs),
		interval: interval,
	}
	r.state.setAlpha(l.Param.InitAlpha)

	if l.Debug {
		l.progress().Start(r.total)
	}

	gen := corpus.NewSafeGen(c, l.Param.BatchSize, epochs)
	err := pool.New(l.Param.Parallelism).Run(context.Background(), func(ctx context.Context, index int) error {
		w := r.newWorker(index)
		sub := gen.Sub()
		for doc, ok := sub.Next(); ok; doc, ok = sub.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			w.document(doc)
		}
		return sub.Err()
	})
	if err != nil {
		return err
	}
	if l.Debug {
		l.progress().Complete()
	}
	return nil
}
