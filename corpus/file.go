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

package corpus

import (
	"bufio"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
)

const maxLineBytes = 16 * 1024 * 1024

// File is a corpus stored one sentence per line as "doc_id<TAB>tokens".
// Consecutive lines sharing an id make up one document. Lines without a tab
// are logged and skipped.
type File struct {
	Path string

	// PeriodIsBreak splits a line into several sentences at '.'.
	PeriodIsBreak bool

	Log logrus.FieldLogger
}

// NewFile reads path, logging skipped lines to the standard logger.
func NewFile(path string) *File {
	return &File{Path: path, Log: logrus.StandardLogger()}
}

func (f *File) Iterator() (Iterator, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, err
	}
	s := bufio.NewScanner(bufio.NewReader(fh))
	s.Buffer(make([]byte, 64*1024), maxLineBytes)
	log := f.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &fileIterator{f: f, fh: fh, s: s, log: log}, nil
}

type fileIterator struct {
	f    *File
	fh   *os.File
	s    *bufio.Scanner
	log  logrus.FieldLogger
	line int
	next *Document
	eof  bool
}

func (it *fileIterator) Next() (*Document, error) {
	for !it.eof {
		if !it.s.Scan() {
			if err := it.s.Err(); err != nil {
				return nil, err
			}
			it.eof = true
			break
		}
		it.line++
		text := it.s.Text()
		if len(strings.TrimSpace(text)) == 0 {
			continue
		}
		tab := strings.IndexByte(text, '\t')
		if tab < 0 {
			it.log.WithFields(logrus.Fields{"path": it.f.Path, "line": it.line}).Warn("bad corpus line, no document id")
			continue
		}
		id := text[:tab]
		sentences := it.f.sentences(text[tab+1:])
		if it.next != nil && it.next.ID == id {
			it.next.Sentences = append(it.next.Sentences, sentences...)
			continue
		}
		done := it.next
		it.next = &Document{ID: id, Sentences: sentences}
		if done != nil {
			return done, nil
		}
	}
	if it.next != nil {
		done := it.next
		it.next = nil
		return done, nil
	}
	return nil, io.EOF
}

func (it *fileIterator) Close() error {
	return it.fh.Close()
}

func (f *File) sentences(text string) []Sentence {
	parts := []string{text}
	if f.PeriodIsBreak {
		parts = strings.Split(text, ".")
	}
	var out []Sentence
	for _, p := range parts {
		tokens := strings.FieldsFunc(p, unicode.IsSpace)
		if len(tokens) > 0 {
			out = append(out, Sentence{Tokens: tokens})
		}
	}
	return out
}
