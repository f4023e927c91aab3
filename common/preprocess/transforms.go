// Copyright 2026 mldata Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package preprocess

import (
	"runtime"

	"github.com/gorse-io/mldata/base"
	"github.com/gorse-io/mldata/base/parallel"
	"github.com/gorse-io/mldata/common/tensor"
	"github.com/juju/errors"
	"gonum.org/v1/gonum/stat"
)

const defaultEpsilon = 1e-8

// Standardize centers every feature to zero mean and unit variance. Features
// are the values of one sample; statistics are taken over the first axis.
type Standardize struct {
	Epsilon float32
	stats   map[string]Moments
}

// Moments are the fitted per-feature statistics of Standardize.
type Moments struct {
	Mean []float32
	Std  []float32
}

func NewStandardize() *Standardize {
	return &Standardize{Epsilon: defaultEpsilon}
}

func (s *Standardize) Fit(name string, t *tensor.Tensor) error {
	n, width := t.Len(), t.RowSize()
	if n == 0 {
		return errors.NotValidf("standardize %q on empty tensor", name)
	}
	data := t.Data()
	moments := Moments{
		Mean: make([]float32, width),
		Std:  make([]float32, width),
	}
	nWorkers := min(width, runtime.GOMAXPROCS(0))
	columns := make([][]float64, nWorkers)
	for i := range columns {
		columns[i] = make([]float64, n)
	}
	err := parallel.Parallel(width, nWorkers, func(workerId, j int) error {
		column := columns[workerId]
		for i := 0; i < n; i++ {
			column[i] = float64(data[i*width+j])
		}
		mean, std := stat.PopMeanStdDev(column, nil)
		moments.Mean[j], moments.Std[j] = float32(mean), float32(std)
		return nil
	})
	if err != nil {
		return errors.Trace(err)
	}
	if s.stats == nil {
		s.stats = make(map[string]Moments)
	}
	s.stats[name] = moments
	return nil
}

func (s *Standardize) Apply(name string, t *tensor.Tensor) error {
	moments, ok := s.stats[name]
	if !ok {
		return base.InvalidOperationf("standardize %q before fit", name)
	}
	width := t.RowSize()
	if width != len(moments.Mean) {
		return errors.NotValidf("standardize %q: %d features, fitted on %d", name, width, len(moments.Mean))
	}
	data := t.Data()
	for i := range data {
		j := i % width
		data[i] = (data[i] - moments.Mean[j]) / (moments.Std[j] + s.Epsilon)
	}
	return nil
}

func (s *Standardize) RequiresFit() bool {
	return true
}

func (s *Standardize) Fitted(name string) bool {
	_, ok := s.stats[name]
	return ok
}

// Moments returns the statistics fitted for name.
func (s *Standardize) Moments(name string) (Moments, bool) {
	moments, ok := s.stats[name]
	return moments, ok
}

// MinMax rescales values into [Min, Max] using the data range seen by Fit.
type MinMax struct {
	Min, Max float32
	ranges   map[string][2]float32
}

func NewMinMax(min, max float32) *MinMax {
	return &MinMax{Min: min, Max: max}
}

func (m *MinMax) Fit(name string, t *tensor.Tensor) error {
	if len(t.Data()) == 0 {
		return errors.NotValidf("min-max %q on empty tensor", name)
	}
	dataMin, dataMax := t.Min(), t.Max()
	if dataMin == dataMax {
		return errors.NotValidf("min-max %q: constant data %v", name, dataMin)
	}
	if m.ranges == nil {
		m.ranges = make(map[string][2]float32)
	}
	m.ranges[name] = [2]float32{dataMin, dataMax}
	return nil
}

func (m *MinMax) Apply(name string, t *tensor.Tensor) error {
	r, ok := m.ranges[name]
	if !ok {
		return base.InvalidOperationf("min-max %q before fit", name)
	}
	return tensor.Rescale(t, m.Min, m.Max, r[0], r[1])
}

func (m *MinMax) RequiresFit() bool {
	return true
}

func (m *MinMax) Fitted(name string) bool {
	_, ok := m.ranges[name]
	return ok
}

// Range returns the data range fitted for name.
func (m *MinMax) Range(name string) (dataMin, dataMax float32, ok bool) {
	r, ok := m.ranges[name]
	return r[0], r[1], ok
}

// Binarizer maps values to {0, 1}. It is stateless.
type Binarizer struct {
	Threshold float32
}

func (b Binarizer) Fit(string, *tensor.Tensor) error {
	return nil
}

func (b Binarizer) Apply(_ string, t *tensor.Tensor) error {
	tensor.Binarize(t, b.Threshold)
	return nil
}

func (b Binarizer) RequiresFit() bool {
	return false
}

func (b Binarizer) Fitted(string) bool {
	return true
}
