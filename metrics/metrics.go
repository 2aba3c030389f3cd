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

// Package metrics exports gradient descent progress to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	tokensTotalGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tl2vec_tokens_total",
			Help: "tokens the current descent will process over all epochs",
		},
		[]string{"phase"},
	)
	tokensProcessedGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tl2vec_tokens_processed",
			Help: "tokens processed so far by the current descent",
		},
		[]string{"phase"},
	)
	alphaGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tl2vec_learning_rate",
			Help: "current annealed learning rate",
		},
		[]string{"phase"},
	)
	descentsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tl2vec_descents_completed_total",
			Help: "gradient descents run to completion",
		},
		[]string{"phase"},
	)
)

func init() {
	prometheus.MustRegister(tokensTotalGauge, tokensProcessedGauge, alphaGauge, descentsCounter)
}

// Progress publishes the reports of one learner under a phase label. It
// satisfies tl2vec.ProgressReporter.
type Progress struct {
	phase string
}

// NewProgress labels every series with phase.
func NewProgress(phase string) *Progress {
	return &Progress{phase: phase}
}

func (p *Progress) Start(total int64) {
	tokensTotalGauge.WithLabelValues(p.phase).Set(float64(total))
	tokensProcessedGauge.WithLabelValues(p.phase).Set(0)
}

func (p *Progress) Report(processed int64, alpha float64) {
	tokensProcessedGauge.WithLabelValues(p.phase).Set(float64(processed))
	alphaGauge.WithLabelValues(p.phase).Set(alpha)
}

func (p *Progress) Complete() {
	descentsCounter.WithLabelValues(p.phase).Inc()
}
