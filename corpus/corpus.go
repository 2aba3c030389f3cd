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

// Package corpus defines the re-iterable document collections consumed by
// the trainer.
package corpus

import "io"

// Sentence is an ordered run of raw tokens.
type Sentence struct {
	Tokens []string
}

// Document is an identified sequence of sentences.
type Document struct {
	ID        string
	Sentences []Sentence
}

// NumTokens counts raw tokens over all sentences.
func (d *Document) NumTokens() int {
	var n int
	for _, s := range d.Sentences {
		n += len(s.Tokens)
	}
	return n
}

// Iterator walks one pass over a corpus. Next returns io.EOF once the pass is
// exhausted.
type Iterator interface {
	Next() (*Document, error)
	Close() error
}

// Corpus can be walked any number of times, each call to Iterator starting a
// fresh, independent pass.
type Corpus interface {
	Iterator() (Iterator, error)
}

// ForEach walks one full pass over c.
func ForEach(c Corpus, f func(*Document) error) error {
	it, err := c.Iterator()
	if err != nil {
		return err
	}
	defer it.Close()
	for {
		doc, err := it.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err = f(doc); err != nil {
			return err
		}
	}
}

// Slice is an in-memory corpus.
type Slice []*Document

func (s Slice) Iterator() (Iterator, error) {
	return &sliceIterator{docs: s}, nil
}

type sliceIterator struct {
	docs []*Document
	pos  int
}

func (it *sliceIterator) Next() (*Document, error) {
	if it.pos >= len(it.docs) {
		return nil, io.EOF
	}
	d := it.docs[it.pos]
	it.pos++
	return d, nil
}

func (it *sliceIterator) Close() error {
	return nil
}

// NewDocument builds a document from sentences given as token slices.
func NewDocument(id string, sentences ...[]string) *Document {
	d := &Document{ID: id}
	for _, s := range sentences {
		d.Sentences = append(d.Sentences, Sentence{Tokens: s})
	}
	return d
}

type filtered struct {
	c    Corpus
	keep func(*Document) bool
}

// Filter returns a lazy view of c holding only documents for which keep
// returns true. keep is re-evaluated on every pass.
func Filter(c Corpus, keep func(*Document) bool) Corpus {
	return &filtered{c, keep}
}

func (f *filtered) Iterator() (Iterator, error) {
	it, err := f.c.Iterator()
	if err != nil {
		return nil, err
	}
	return &filteredIterator{it, f.keep}, nil
}

type filteredIterator struct {
	it   Iterator
	keep func(*Document) bool
}

func (f *filteredIterator) Next() (*Document, error) {
	for {
		d, err := f.it.Next()
		if err != nil {
			return nil, err
		}
		if f.keep(d) {
			return d, nil
		}
	}
}

func (f *filteredIterator) Close() error {
	return f.it.Close()
}
