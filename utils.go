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
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func (l *Learner) logger() logrus.FieldLogger {
	if l.Log == nil {
		return logrus.StandardLogger()
	}
	return l.Log
}

// runLogger tags every line of one call with a fresh run id.
func (l *Learner) runLogger(phase string) logrus.FieldLogger {
	return l.logger().WithFields(logrus.Fields{"run": uuid.NewString(), "phase": phase})
}

func (l *Learner) progress() ProgressReporter {
	if l.Progress == nil {
		l.Progress = NewLogProgress(l.logger())
	}
	return l.Progress
}

// ProgressReporter receives gradient descent progress. Report may be called
// from several workers at once.
type ProgressReporter interface {
	Start(total int64)
	Report(processed int64, alpha float64)
	Complete()
}

// LogProgress reports progress as log lines with speed and eta.
type LogProgress struct {
	log     logrus.FieldLogger
	mu      sync.Mutex
	startAt time.Time
	total   int64
}

func NewLogProgress(log logrus.FieldLogger) *LogProgress {
	return &LogProgress{log: log}
}

func (p *LogProgress) Start(total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.startAt = time.Now()
	p.total = total
	p.log.WithField("tokens", total).Info("gradient descent started")
}

func (p *LogProgress) Report(processed int64, alpha float64) {
	p.mu.Lock()
	startAt, total := p.startAt, p.total
	p.mu.Unlock()

	secondsElapsed := time.Since(startAt).Seconds()
	var tokensPerSecond, secondsRemaining float64
	if secondsElapsed > 0 {
		tokensPerSecond = float64(processed) / secondsElapsed
	}
	if tokensPerSecond > 0 && total > processed {
		secondsRemaining = float64(total-processed) / tokensPerSecond
	}
	var pct float64
	if total > 0 {
		pct = float64(processed) / float64(total) * 1e2
	}
	p.log.WithFields(logrus.Fields{
		"progress": pct,
		"alpha":    alpha,
		"speed":    tokensPerSecond,
		"eta":      (time.Duration(secondsRemaining) * time.Second).String(),
	}).Info("gradient descent")
}

func (p *LogProgress) Complete() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.log.WithField("elapsed", time.Since(p.startAt).String()).Info("gradient descent complete")
}
