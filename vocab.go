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
	"sort"
	"strings"

	"github.com/alexandres/tl2vec/corpus"
	"github.com/alexandres/tl2vec/internal/randl"
)

// ctxBreakToken is the end-of-sequence sentinel. It enters the count table
// with an unbounded frequency so it sorts first, then drops to zero.
const ctxBreakToken = "</s>"

type vocabulary struct {
	index map[string]int
	nodes []Node // sorted by descending frequency, sentinel first
	total int64  // token count, sentinel excluded
}

func normalize(tok string) string {
	return strings.ToLower(strings.TrimSpace(tok))
}

func (v *vocabulary) lookup(tok string) (int, bool) {
	i, ok := v.index[normalize(tok)]
	return i, ok
}

func (v *vocabulary) fix() {
	for i := range v.nodes {
		v.nodes[i].Fixed = true
	}
}

// byFreq orders by descending frequency, then descending token.
type byFreq struct {
	tokens []string
	freqs  []int64
}

func (a byFreq) Len() int { return len(a.tokens) }
func (a byFreq) Swap(i, j int) {
	a.tokens[i], a.tokens[j] = a.tokens[j], a.tokens[i]
	a.freqs[i], a.freqs[j] = a.freqs[j], a.freqs[i]
}
func (a byFreq) Less(i, j int) bool {
	if a.freqs[i] != a.freqs[j] {
		return a.freqs[i] > a.freqs[j]
	}
	return a.tokens[i] > a.tokens[j]
}

// scan makes the single counting pass over the corpus and collects the
// distinct document ids in first-seen order.
func scan(c corpus.Corpus) (map[string]int64, []string, error) {
	counter := make(map[string]int64)
	seen := make(map[string]bool)
	var ids []string
	err := corpus.ForEach(c, func(d *corpus.Document) error {
		if !seen[d.ID] {
			seen[d.ID] = true
			ids = append(ids, d.ID)
		}
		for _, s := range d.Sentences {
			for _, tok := range s.Tokens {
				counter[normalize(tok)]++
			}
		}
		return nil
	})
	return counter, ids, err
}

// rankTokens drops tokens under minFreq, adds the sentinel and sorts. total
// excludes the sentinel.
func rankTokens(counter map[string]int64, minFreq int) (sorted byFreq, total int64) {
	counter[ctxBreakToken] = math.MaxInt64
	for tok, freq := range counter {
		if freq < int64(minFreq) {
			continue
		}
		sorted.tokens = append(sorted.tokens, tok)
		sorted.freqs = append(sorted.freqs, freq)
		if tok != ctxBreakToken {
			total += freq
		}
	}
	sort.Sort(sorted)
	sorted.freqs[0] = 0
	return sorted, total
}

func (a byFreq) tokenFreqs() []TokenFreq {
	out := make([]TokenFreq, len(a.tokens))
	for i := range a.tokens {
		out[i] = TokenFreq{a.tokens[i], a.freqs[i]}
	}
	return out
}

// buildVocab turns token counts into the sorted vocabulary. Vectors are drawn
// from r in sorted order.
func buildVocab(counter map[string]int64, p Param, r *randl.Stream) *vocabulary {
	sorted, total := rankTokens(counter, p.MinFreq)

	v := &vocabulary{
		index: make(map[string]int, sorted.Len()),
		nodes: newArena(sorted.Len(), p.VecDim),
		total: total,
	}
	for i, tok := range sorted.tokens {
		n := &v.nodes[i]
		n.Token, n.Freq = tok, sorted.freqs[i]
		v.index[tok] = i
	}

	for i := range v.nodes {
		v.nodes[i].initIn(r)
	}

	if p.Subsampling > 0 {
		fcount := p.Subsampling * float64(total)
		for i := range v.nodes {
			n := &v.nodes[i]
			freq := float64(n.Freq)
			n.SampleProb = (math.Sqrt(freq/fcount) + 1) * fcount / freq
		}
	}
	return v
}

// TokenFreq is one vocabulary entry as exported.
type TokenFreq struct {
	Token string
	Freq  int64
}
