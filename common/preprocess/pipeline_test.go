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
	"testing"

	"github.com/gorse-io/mldata/base"
	"github.com/gorse-io/mldata/common/tensor"
	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPipeline(t *testing.T) {
	p, err := NewPipeline(NewStandardize())
	require.NoError(t, err)
	assert.Equal(t, 1, p.Len())
	assert.True(t, p.RequiresFit())

	p, err = NewPipeline(Binarizer{Threshold: 0.5})
	require.NoError(t, err)
	assert.False(t, p.RequiresFit())
	assert.True(t, p.Fitted(""))

	_, err = NewPipeline(NewStandardize(), nil)
	assert.True(t, errors.Is(err, errors.NotValid))
}

func TestPipeline_FitChainsSteps(t *testing.T) {
	minMax := NewMinMax(0, 1)
	p, err := NewPipeline(minMax, Binarizer{Threshold: 0.5})
	require.NoError(t, err)
	x := tensor.NewTensor([]float32{0, 2, 6, 10}, 4)
	require.NoError(t, p.Fit("", x))
	assert.Equal(t, []float32{0, 0, 1, 1}, x.Data())
	dataMin, dataMax, ok := minMax.Range("")
	assert.True(t, ok)
	assert.Equal(t, float32(0), dataMin)
	assert.Equal(t, float32(10), dataMax)

	// apply reuses the training range
	y := tensor.NewTensor([]float32{4, 20}, 2)
	require.NoError(t, p.Apply("", y))
	assert.Equal(t, []float32{0, 1}, y.Data())
	dataMin, dataMax, _ = minMax.Range("")
	assert.Equal(t, float32(0), dataMin)
	assert.Equal(t, float32(10), dataMax)
}

func TestPipeline_ApplyBeforeFit(t *testing.T) {
	p, err := NewPipeline(Binarizer{Threshold: 1}, NewStandardize())
	require.NoError(t, err)
	x := tensor.NewTensor([]float32{0, 2, 6}, 3)
	err = p.Apply("", x)
	assert.True(t, errors.Is(err, base.InvalidOperation))
	// nothing mutated, not even by the stateless first step
	assert.Equal(t, []float32{0, 2, 6}, x.Data())
}

func TestPipeline_StatisticsPerName(t *testing.T) {
	s := NewStandardize()
	p, err := NewPipeline(s)
	require.NoError(t, err)
	require.NoError(t, p.Fit("image", tensor.NewTensor([]float32{1, 3}, 2)))
	assert.True(t, p.Fitted("image"))
	assert.False(t, p.Fitted("tag"))
	err = p.Apply("tag", tensor.NewTensor([]float32{1}, 1))
	assert.True(t, errors.Is(err, base.InvalidOperation))
}
