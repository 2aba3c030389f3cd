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
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/alexandres/tl2vec"
)

const (
	binaryModelMagicNumber = 0x71c2bec0
	binaryModelVersion     = 1

	uint32Bytes = 4
)

var ErrBadModel = errors.New("not a binary word model")

// WriteBinary writes emb as: magic, version, vocab size, dim, the parameter
// snapshot and every token as length-prefixed strings, then the float32
// vectors row by row. All integers are little-endian uint32.
func WriteBinary(w io.Writer, emb *tl2vec.WordEmbedding) error {
	bw := &binaryWriter{w: bufio.NewWriter(w)}
	bw.putUint32(binaryModelMagicNumber)
	bw.putUint32(binaryModelVersion)
	bw.putUint32(uint32(len(emb.Vocab)))
	bw.putUint32(uint32(emb.Dim()))
	bw.putString(emb.Param)
	for _, tv := range emb.Vocab {
		bw.putString(tv.Token)
	}
	for _, tv := range emb.Vocab {
		for _, x := range tv.Vector {
			bw.putUint32(math.Float32bits(x))
		}
	}
	if bw.err != nil {
		return bw.err
	}
	return bw.w.Flush()
}

type binaryWriter struct {
	w   *bufio.Writer
	b   [uint32Bytes]byte
	err error
}

func (bw *binaryWriter) putUint32(v uint32) {
	if bw.err != nil {
		return
	}
	byteOrder.PutUint32(bw.b[:], v)
	_, bw.err = bw.w.Write(bw.b[:])
}

func (bw *binaryWriter) putString(s string) {
	bw.putUint32(uint32(len(s)))
	if bw.err != nil {
		return
	}
	_, bw.err = bw.w.WriteString(s)
}

// ReadBinary loads a model written by WriteBinary.
func ReadBinary(r io.Reader) (*tl2vec.WordEmbedding, error) {
	br := &binaryReader{r: bufio.NewReader(r)}
	if magic := br.readUint32(); br.err == nil && magic != binaryModelMagicNumber {
		return nil, fmt.Errorf("%w: magic number %#x", ErrBadModel, magic)
	}
	if version := br.readUint32(); br.err == nil && version != binaryModelVersion {
		return nil, fmt.Errorf("%w: version %d", ErrBadModel, version)
	}
	vocabSize := br.readUint32()
	dim := br.readUint32()
	emb := &tl2vec.WordEmbedding{Param: br.readString()}
	if br.err != nil {
		return nil, br.err
	}

	emb.Vocab = make([]tl2vec.TokenVector, vocabSize)
	for i := range emb.Vocab {
		emb.Vocab[i].Token = br.readString()
	}
	for i := range emb.Vocab {
		v := make([]float32, dim)
		for j := range v {
			v[j] = math.Float32frombits(br.readUint32())
		}
		emb.Vocab[i].Vector = v
	}
	if br.err != nil {
		return nil, br.err
	}
	return emb, nil
}

type binaryReader struct {
	r   *bufio.Reader
	b   [uint32Bytes]byte
	err error
}

func (br *binaryReader) readUint32() uint32 {
	if br.err != nil {
		return 0
	}
	if _, br.err = io.ReadFull(br.r, br.b[:]); br.err != nil {
		return 0
	}
	return byteOrder.Uint32(br.b[:])
}

func (br *binaryReader) readString() string {
	n := br.readUint32()
	if br.err != nil {
		return ""
	}
	b := make([]byte, n)
	if _, br.err = io.ReadFull(br.r, b); br.err != nil {
		return ""
	}
	return string(b)
}
