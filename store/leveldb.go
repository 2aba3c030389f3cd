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
	"github.com/syndtr/goleveldb/leveldb"
	leveldberrors "github.com/syndtr/goleveldb/leveldb/errors"
	leveldbopt "github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// LevelDBStore keeps each vector under "channel\x00id".
type LevelDBStore struct {
	dbPath string
	db     *leveldb.DB
}

// OpenLevelDB opens or creates the database at dbPath.
func OpenLevelDB(dbPath string) (*LevelDBStore, error) {
	opts := leveldbopt.Options{}
	opts.Compression = leveldbopt.NoCompression
	db, err := leveldb.OpenFile(dbPath, &opts)
	if err != nil {
		return nil, err
	}
	return &LevelDBStore{dbPath, db}, nil
}

func docKey(channel, id string) []byte {
	key := make([]byte, 0, len(channel)+1+len(id))
	key = append(key, channel...)
	key = append(key, 0)
	return append(key, id...)
}

func (ldb *LevelDBStore) PutDocs(channel string, vecs map[string][]float64) error {
	batch := new(leveldb.Batch)
	for id, v := range vecs {
		batch.Put(docKey(channel, id), encodeVec(v))
	}
	return ldb.db.Write(batch, nil)
}

func (ldb *LevelDBStore) GetDoc(channel, id string) ([]float64, error) {
	val, err := ldb.db.Get(docKey(channel, id), nil)
	if err == leveldberrors.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeVec(val)
}

func (ldb *LevelDBStore) Iterate(channel string, f func(id string, vec []float64) error) error {
	prefix := docKey(channel, "")
	iter := ldb.db.NewIterator(util.BytesPrefix(prefix), nil)
	defer iter.Release()
	for iter.Next() {
		v, err := decodeVec(iter.Value())
		if err != nil {
			return err
		}
		if err = f(string(iter.Key()[len(prefix):]), v); err != nil {
			return err
		}
	}
	return iter.Error()
}

func (ldb *LevelDBStore) Close() error {
	return ldb.db.Close()
}
