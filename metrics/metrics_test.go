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

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexandres/tl2vec"
	"github.com/alexandres/tl2vec/corpus"
)

var _ tl2vec.ProgressReporter = (*Progress)(nil)

// gathered returns the value of name for the given phase label.
func gathered(t *testing.T, name, phase string) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "phase" && lp.GetValue() == phase {
					if g := m.GetGauge(); g != nil {
						return g.GetValue()
					}
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	t.Fatalf("metric %s{phase=%q} not found", name, phase)
	return 0
}

func TestProgress(t *testing.T) {
	p := NewProgress("test")
	p.Start(1000)
	assert.Equal(t, 1000.0, gathered(t, "tl2vec_tokens_total", "test"))
	assert.Equal(t, 0.0, gathered(t, "tl2vec_tokens_processed", "test"))

	p.Report(250, 0.0375)
	assert.Equal(t, 250.0, gathered(t, "tl2vec_tokens_processed", "test"))
	assert.Equal(t, 0.0375, gathered(t, "tl2vec_learning_rate", "test"))

	p.Complete()
	p.Complete()
	assert.Equal(t, 2.0, gathered(t, "tl2vec_descents_completed_total", "test"))
}

func TestProgressDrivenByLearner(t *testing.T) {
	param := tl2vec.DefaultParam()
	param.MinFreq = 1
	param.VecDim = 4
	param.TableSize = 1000
	param.Iteration = 2
	param.AlphaUpdateInterval = 0

	l := tl2vec.NewLearner(param)
	l.Log, _ = test.NewNullLogger()
	l.Progress = NewProgress("learner")
	docs := corpus.Slice{
		corpus.NewDocument("A", []string{"the", "cat", "sat"}),
		corpus.NewDocument("B", []string{"the", "dog", "ran"}),
	}
	require.NoError(t, l.Train(docs))
	assert.Equal(t, 1.0, gathered(t, "tl2vec_descents_completed_total", "learner"))
	assert.Greater(t, gathered(t, "tl2vec_tokens_total", "learner"), 0.0)
}
