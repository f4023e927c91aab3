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

package tensor

import (
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
)

func TestRescale(t *testing.T) {
	x := NewTensor([]float32{2, 4, 6, 10}, 4)
	assert.NoError(t, Rescale(x, 0, 1))
	assert.InDeltaSlice(t, []float32{0, 0.25, 0.5, 1}, x.Data(), 1e-6)
	// explicit data range
	y := NewTensor([]float32{0, 5, 10}, 3)
	assert.NoError(t, Rescale(y, -1, 1, 0, 20))
	assert.InDeltaSlice(t, []float32{-1, -0.5, 0}, y.Data(), 1e-6)
}

func TestRescale_RoundTrip(t *testing.T) {
	original := []float32{-3.5, 0, 1.25, 7, 12.5, 4}
	x := NewTensor(append([]float32(nil), original...), 6)
	minimum, maximum := x.Min(), x.Max()
	assert.NoError(t, Rescale(x, 0, 1))
	assert.NoError(t, Rescale(x, minimum, maximum, 0, 1))
	assert.InDeltaSlice(t, original, x.Data(), 1e-5)
}

func TestRescale_Degenerate(t *testing.T) {
	x := NewTensor([]float32{3, 3, 3}, 3)
	assert.True(t, errors.Is(Rescale(x, 0, 1), errors.NotValid))
	assert.True(t, errors.Is(Rescale(x, 0, 1, 2, 2), errors.NotValid))
	assert.True(t, errors.Is(Rescale(x, 0, 1, 2), errors.NotValid))
	// data untouched
	assert.Equal(t, []float32{3, 3, 3}, x.Data())
}

func TestBinarize(t *testing.T) {
	x := NewTensor([]float32{-1, 0.49, 0.5, 0.51, 3}, 5)
	y := Binarize(x, 0.5)
	assert.Same(t, x, y)
	assert.Equal(t, []float32{0, 0, 1, 1, 1}, y.Data())
	for _, v := range y.Data() {
		assert.Contains(t, []float32{0, 1}, v)
	}
	// idempotent
	assert.Equal(t, []float32{0, 0, 1, 1, 1}, Binarize(y, 0.5).Data())
}
