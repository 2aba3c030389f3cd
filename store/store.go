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

// Package store persists trained word and document vectors.
package store

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/alexandres/tl2vec"
)

// Document vector channels.
const (
	ChannelLexical = "lexical"
	ChannelTopical = "topical"
)

var (
	ErrNotFound     = errors.New("document not found")
	ErrUnknownStore = errors.New("unknown store")
)

var byteOrder binary.ByteOrder = binary.LittleEndian

// DocStore keeps document vectors keyed by channel and document id.
type DocStore interface {
	PutDocs(channel string, vecs map[string][]float64) error
	GetDoc(channel, id string) ([]float64, error)
	// Iterate visits the documents of a channel in id order.
	Iterate(channel string, f func(id string, vec []float64) error) error
	Close() error
}

// Open opens a DocStore from a "kind:location" string, kind being leveldb
// or sqlite.
func Open(spec string) (DocStore, error) {
	kind, location, ok := strings.Cut(spec, ":")
	if !ok || location == "" {
		return nil, fmt.Errorf("%w: %q, want leveldb:DIR or sqlite:FILE", ErrUnknownStore, spec)
	}
	switch kind {
	case "leveldb":
		return OpenLevelDB(location)
	case "sqlite":
		return OpenSQLite(location)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStore, kind)
}

// PutEmbedding stores both channels of emb.
func PutEmbedding(s DocStore, emb *tl2vec.DocEmbedding) error {
	if err := s.PutDocs(ChannelLexical, emb.Lexical); err != nil {
		return fmt.Errorf("put %s: %w", ChannelLexical, err)
	}
	if err := s.PutDocs(ChannelTopical, emb.Topical); err != nil {
		return fmt.Errorf("put %s: %w", ChannelTopical, err)
	}
	return nil
}

func encodeVec(v []float64) []byte {
	b := make([]byte, 8*len(v))
	for i, x := range v {
		byteOrder.PutUint64(b[8*i:], math.Float64bits(x))
	}
	return b
}

func decodeVec(b []byte) ([]float64, error) {
	if len(b)%8 != 0 {
		return nil, fmt.Errorf("corrupt vector of %d bytes", len(b))
	}
	v := make([]float64, len(b)/8)
	for i := range v {
		v[i] = math.Float64frombits(byteOrder.Uint64(b[8*i:]))
	}
	return v, nil
}

func sortedIDs(vecs map[string][]float64) []string {
	ids := make([]string, 0, len(vecs))
	for id := range vecs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
