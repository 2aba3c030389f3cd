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
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	ActivationExp     = "exp"
	ActivationSigmoid = "sigmoid"

	defaultTableSize = 1e8
)

var (
	ErrInvalidParam = errors.New("invalid parameter")
	ErrNotTrained   = errors.New("model not trained")
)

// Param holds the learner hyperparameters. Field names on the wire follow
// the names used by the rest of the document-modeling pipeline.
type Param struct {
	MinFreq             int     `json:"min_freq" yaml:"min_freq"`
	VecDim              int     `json:"vec_dim" yaml:"vec_dim"`
	Subsampling         float64 `json:"optm_subsampling" yaml:"optm_subsampling"`
	InitAlpha           float64 `json:"optm_initAlpha" yaml:"optm_initAlpha"`
	Window              int     `json:"optm_window" yaml:"optm_window"`
	NegSample           int     `json:"optm_negSample" yaml:"optm_negSample"`
	Parallelism         int     `json:"optm_parallelism" yaml:"optm_parallelism"`
	Iteration           int     `json:"optm_iteration" yaml:"optm_iteration"`
	AlphaUpdateInterval int64   `json:"optm_aphaUpdateInterval" yaml:"optm_aphaUpdateInterval"`

	// Size of the unigram negative-sampling table.
	TableSize int `json:"optm_tableSize" yaml:"optm_tableSize"`
	// Documents handed to a worker per claim.
	BatchSize int `json:"optm_batchSize" yaml:"optm_batchSize"`
	// Shrink the window radius uniformly in [1, Window] per position.
	DynamicWindow bool `json:"optm_dynamicWindow" yaml:"optm_dynamicWindow"`
	// Prediction function applied to the score: "exp" or "sigmoid".
	Activation string `json:"optm_activation" yaml:"optm_activation"`
}

// DefaultParam returns the stock hyperparameters.
func DefaultParam() Param {
	return Param{
		MinFreq:             3,
		VecDim:              200,
		Subsampling:         1e-4,
		InitAlpha:           0.05,
		Window:              8,
		NegSample:           25,
		Parallelism:         1,
		Iteration:           20,
		AlphaUpdateInterval: 10000,
		TableSize:           defaultTableSize,
		BatchSize:           100,
		DynamicWindow:       true,
		Activation:          ActivationExp,
	}
}

// LoadParam reads a YAML hyperparameter file over the defaults.
func LoadParam(path string) (Param, error) {
	p := DefaultParam()
	b, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	if err = yaml.Unmarshal(b, &p); err != nil {
		return p, fmt.Errorf("parse %s: %w", path, err)
	}
	return p, p.Validate()
}

// Validate rejects out-of-range values with ErrInvalidParam.
func (p Param) Validate() error {
	switch {
	case p.VecDim < 1:
		return fmt.Errorf("%w: vec_dim must be positive, got %d", ErrInvalidParam, p.VecDim)
	case p.InitAlpha < 0:
		return fmt.Errorf("%w: optm_initAlpha must not be negative, got %g", ErrInvalidParam, p.InitAlpha)
	case p.Subsampling < 0:
		return fmt.Errorf("%w: optm_subsampling must not be negative, got %g", ErrInvalidParam, p.Subsampling)
	case p.BatchSize < 1:
		return fmt.Errorf("%w: optm_batchSize must be positive, got %d", ErrInvalidParam, p.BatchSize)
	case p.MinFreq < 0:
		return fmt.Errorf("%w: min_freq must not be negative, got %d", ErrInvalidParam, p.MinFreq)
	case p.Window < 0:
		return fmt.Errorf("%w: optm_window must not be negative, got %d", ErrInvalidParam, p.Window)
	case p.NegSample < 0:
		return fmt.Errorf("%w: optm_negSample must not be negative, got %d", ErrInvalidParam, p.NegSample)
	case p.Parallelism < 1:
		return fmt.Errorf("%w: optm_parallelism must be positive, got %d", ErrInvalidParam, p.Parallelism)
	case p.Iteration < 1:
		return fmt.Errorf("%w: optm_iteration must be positive, got %d", ErrInvalidParam, p.Iteration)
	case p.AlphaUpdateInterval < 0:
		return fmt.Errorf("%w: optm_aphaUpdateInterval must not be negative, got %d", ErrInvalidParam, p.AlphaUpdateInterval)
	case p.TableSize < 1:
		return fmt.Errorf("%w: optm_tableSize must be positive, got %d", ErrInvalidParam, p.TableSize)
	case p.Activation != ActivationExp && p.Activation != ActivationSigmoid:
		return fmt.Errorf("%w: unknown optm_activation %q", ErrInvalidParam, p.Activation)
	}
	return nil
}

// Snapshot serializes the parameters as JSON.
func (p Param) Snapshot() (string, error) {
	b, err := json.Marshal(p)
	return string(b), err
}
