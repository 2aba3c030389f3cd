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

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/alexandres/tl2vec"
	"github.com/alexandres/tl2vec/metrics"
	"github.com/alexandres/tl2vec/store"
)

const (
	lexicalPathSuffix = ".lexical"
	topicalPathSuffix = ".topical"
	inferPathSuffix   = ".infer"
)

var (
	vectorOutputPath string
	binaryOutputPath string
	storeSpec        string
	inferPath        string
	metricsAddr      string
	numThreads       int
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train word and document vectors",
	Long: `Train word vectors together with a lexical and a topical vector per
document.

Word vectors are written to --output in word2vec text format. Document vectors
go next to it, suffixed .lexical and .topical. With --infer, vectors are then
learned for the documents of a second corpus against the frozen model and
written with an extra .infer suffix.`,
	RunE: runTrain,
}

func init() {
	rootCmd.AddCommand(trainCmd)
	trainCmd.Flags().StringVar(&vectorOutputPath, "output", "vectors.txt", "path where to output word vectors")
	trainCmd.Flags().StringVar(&binaryOutputPath, "binary", "", "path where to output the binary word model")
	trainCmd.Flags().StringVar(&storeSpec, "store", "", "document vector store, leveldb:DIR or sqlite:FILE")
	trainCmd.Flags().StringVar(&inferPath, "infer", "", "corpus of documents to infer after training")
	trainCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	trainCmd.Flags().IntVar(&numThreads, "threads", 0, "number of threads to use, overrides optm_parallelism")
}

func runTrain(cmd *cobra.Command, args []string) error {
	if corpusPath == "" {
		return errors.New("--corpus is required")
	}
	param, err := loadParam()
	if err != nil {
		return err
	}
	if numThreads > 0 {
		param.Parallelism = numThreads
	}
	log := newLogger(cmd)

	l := tl2vec.NewLearner(param)
	l.Log = log
	if metricsAddr != "" {
		stop := serveMetrics(metricsAddr, log)
		defer stop()
		l.Progress = metrics.NewProgress("train")
	}

	if err = l.Train(openCorpus(corpusPath, log)); err != nil {
		return err
	}
	if err = saveWords(l); err != nil {
		return err
	}
	docs, err := l.ProduceDocEmbdUnnormalized()
	if err != nil {
		return err
	}
	if err = saveDocs(vectorOutputPath, docs); err != nil {
		return err
	}

	var inferred *tl2vec.DocEmbedding
	if inferPath != "" {
		if metricsAddr != "" {
			l.Progress = metrics.NewProgress("infer")
		}
		inferred = l.InferUnnormalized(openCorpus(inferPath, log))
		if inferred == nil {
			return fmt.Errorf("inference over %s failed", inferPath)
		}
		if err = saveDocs(vectorOutputPath+inferPathSuffix, inferred); err != nil {
			return err
		}
	}

	if storeSpec != "" {
		s, err := store.Open(storeSpec)
		if err != nil {
			return err
		}
		defer s.Close()
		if err = store.PutEmbedding(s, docs); err != nil {
			return err
		}
		if inferred != nil {
			if err = store.PutEmbedding(s, inferred); err != nil {
				return err
			}
		}
		log.WithField("store", storeSpec).Info("document vectors stored")
	}
	return nil
}

func saveWords(l *tl2vec.Learner) error {
	emb, err := l.Produce()
	if err != nil {
		return err
	}
	if err = writeFile(vectorOutputPath, func(f *os.File) error { return store.WriteText(f, emb) }); err != nil {
		return err
	}
	if binaryOutputPath == "" {
		return nil
	}
	return writeFile(binaryOutputPath, func(f *os.File) error { return store.WriteBinary(f, emb) })
}

func saveDocs(prefix string, docs *tl2vec.DocEmbedding) error {
	err := writeFile(prefix+lexicalPathSuffix, func(f *os.File) error { return store.WriteDocText(f, docs.Lexical) })
	if err != nil {
		return err
	}
	return writeFile(prefix+topicalPathSuffix, func(f *os.File) error { return store.WriteDocText(f, docs.Topical) })
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func serveMetrics(addr string, log logrus.FieldLogger) (stop func()) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("metrics server stopped")
		}
	}()
	log.WithField("addr", addr).Info("serving metrics")
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}
}
