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
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexandres/tl2vec"
)

var vocabOutputPath string

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Count the corpus vocabulary",
	Long: `Count the corpus vocabulary and write it as "token freq" lines, most
frequent first. The sentence sentinel is listed first with frequency 0.`,
	RunE: runVocab,
}

func init() {
	rootCmd.AddCommand(vocabCmd)
	vocabCmd.Flags().StringVar(&vocabOutputPath, "output", "", "path where to output vocab, stdout when empty")
}

func runVocab(cmd *cobra.Command, args []string) error {
	if corpusPath == "" {
		return errors.New("--corpus is required")
	}
	param, err := loadParam()
	if err != nil {
		return err
	}
	log := newLogger(cmd)
	l := tl2vec.NewLearner(param)
	l.Log = log
	if err = l.BuildVocabulary(openCorpus(corpusPath, log)); err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if vocabOutputPath != "" {
		f, err := os.Create(vocabOutputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	bw := bufio.NewWriter(w)
	for _, tf := range l.Vocabulary() {
		fmt.Fprintf(bw, "%s %d\n", tf.Token, tf.Freq)
	}
	return bw.Flush()
}
