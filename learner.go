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

// Package tl2vec trains word vectors jointly with a lexical and a topical
// vector per document, using skip-gram windows and negative sampling, and
// infers both document vectors for unseen documents.
package tl2vec

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/alexandres/tl2vec/corpus"
	"github.com/alexandres/tl2vec/internal/randl"
)

// Learner owns the vocabulary, the sampling table and the training document
// vectors of one model. Train must complete before any other call; calls on
// the same Learner must not overlap.
type Learner struct {
	Param Param

	// Debug enables the vocabulary summary and progress reports.
	Debug bool
	Log   logrus.FieldLogger
	// Progress receives reports when Debug is set. Defaults to logging.
	Progress ProgressReporter

	vocab     *vocabulary
	table     []int32
	trainDocs *docSet
	ranked    []TokenFreq
	total     int64
	// trained is set once every node is frozen.
	trained bool
}

// NewLearner returns a learner with debug output on the standard logger.
func NewLearner(param Param) *Learner {
	return &Learner{Param: param, Debug: true, Log: logrus.StandardLogger()}
}

// BuildVocabulary makes the counting pass over c and ranks the vocabulary
// without allocating any vector or the sampling table.
func (l *Learner) BuildVocabulary(c corpus.Corpus) error {
	if err := l.Param.Validate(); err != nil {
		return err
	}
	l.reset()
	counter, _, err := scan(c)
	if err != nil {
		return fmt.Errorf("count tokens: %w", err)
	}
	sorted, total := rankTokens(counter, l.Param.MinFreq)
	l.ranked, l.total = sorted.tokenFreqs(), total
	if l.Debug {
		l.runLogger("vocab").WithFields(logrus.Fields{"vocab": len(l.ranked), "total": total}).Info("vocabulary built")
	}
	return nil
}

func (l *Learner) reset() {
	l.vocab, l.table, l.trainDocs = nil, nil, nil
	l.ranked, l.total = nil, 0
	l.trained = false
}

func (l *Learner) preprocess(c corpus.Corpus, log logrus.FieldLogger) error {
	l.reset()

	counter, ids, err := scan(c)
	if err != nil {
		return fmt.Errorf("count tokens: %w", err)
	}

	rd := randl.New(1)
	vocab := buildVocab(counter, l.Param, rd)
	table := newUnigramTable(vocab.nodes, l.Param.TableSize, unigramPower)
	if l.Debug {
		log.WithFields(logrus.Fields{"vocab": len(vocab.nodes), "total": vocab.total}).Info("vocabulary built")
	}

	l.vocab, l.table = vocab, table
	l.ranked, l.total = make([]TokenFreq, len(vocab.nodes)), vocab.total
	for i := range vocab.nodes {
		l.ranked[i] = TokenFreq{vocab.nodes[i].Token, vocab.nodes[i].Freq}
	}
	l.trainDocs = newDocSet(ids, l.Param.VecDim, rd)
	return nil
}

// Train builds the vocabulary from c, runs optm_iteration epochs of gradient
// descent and freezes every word and training document vector.
func (l *Learner) Train(c corpus.Corpus) error {
	if err := l.Param.Validate(); err != nil {
		return err
	}
	log := l.runLogger("train")
	if err := l.preprocess(c, log); err != nil {
		return err
	}
	err := l.descend(c, l.trainDocs, l.vocab.total, l.Param.Iteration, l.Param.AlphaUpdateInterval, log)
	if err != nil {
		return fmt.Errorf("gradient descent: %w", err)
	}
	l.fixTrainedModel()
	return nil
}

func (l *Learner) fixTrainedModel() {
	l.vocab.fix()
	l.trainDocs.fix()
	l.trained = true
}

// Vocabulary returns the sorted vocabulary.
func (l *Learner) Vocabulary() []TokenFreq {
	return append([]TokenFreq(nil), l.ranked...)
}

// TokenTotal is the number of in-vocabulary tokens in the training corpus.
func (l *Learner) TokenTotal() int64 {
	return l.total
}
