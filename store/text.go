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

package store

import (
	"bufio"
	"fmt"
	"io"

	"github.com/alexandres/tl2vec"
)

// WriteText writes word vectors in word2vec text format: a "count dim"
// header, then one "token v1 v2 ..." line per word.
func WriteText(w io.Writer, emb *tl2vec.WordEmbedding) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", len(emb.Vocab), emb.Dim())
	for _, tv := range emb.Vocab {
		bw.WriteString(tv.Token)
		for _, x := range tv.Vector {
			fmt.Fprintf(bw, " %f", x)
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}

// WriteDocText writes document vectors in the same format, ids sorted.
func WriteDocText(w io.Writer, vecs map[string][]float64) error {
	ids := sortedIDs(vecs)
	var dim int
	if len(ids) > 0 {
		dim = len(vecs[ids[0]])
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", len(ids), dim)
	for _, id := range ids {
		bw.WriteString(id)
		for _, x := range vecs[id] {
			fmt.Fprintf(bw, " %f", x)
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}
