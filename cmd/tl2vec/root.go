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
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/alexandres/tl2vec"
	"github.com/alexandres/tl2vec/corpus"
)

var (
	corpusPath         string
	configPath         string
	periodIsWhitespace bool
	verbose            int
)

var rootCmd = &cobra.Command{
	Use:   "tl2vec",
	Short: "Train word vectors jointly with lexical and topical document vectors",
	Long: `tl2vec learns word vectors with skip-gram negative sampling while giving
every document two vectors: a lexical one averaged into each context window
and a topical one predicted from each window.

The corpus is a text file with one sentence per line, written as
"doc_id<TAB>space separated tokens".`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&corpusPath, "corpus", "", "path to corpus")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML hyperparameter file, defaults are used when empty")
	rootCmd.PersistentFlags().BoolVar(&periodIsWhitespace, "periodiswhitespace", false, "treat '.' as a sentence break")
	rootCmd.PersistentFlags().IntVar(&verbose, "verbose", 1, "0 = errors, 1 = info, 2 = debug")
}

func Execute() error {
	return rootCmd.Execute()
}

func newLogger(cmd *cobra.Command) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(cmd.ErrOrStderr())
	switch {
	case verbose <= 0:
		log.SetLevel(logrus.ErrorLevel)
	case verbose == 1:
		log.SetLevel(logrus.InfoLevel)
	default:
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

func loadParam() (tl2vec.Param, error) {
	if configPath == "" {
		p := tl2vec.DefaultParam()
		return p, p.Validate()
	}
	return tl2vec.LoadParam(configPath)
}

func openCorpus(path string, log logrus.FieldLogger) *corpus.File {
	f := corpus.NewFile(path)
	f.PeriodIsBreak = periodIsWhitespace
	f.Log = log
	return f
}
