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
	"github.com/stretchr/testify/require"
)

func TestTensor_Slice(t *testing.T) {
	data := make([]float32, 60)
	for i := range data {
		data[i] = float32(i)
	}
	x := NewTensor(data, 3, 4, 5)
	y := x.Slice(1, 3)
	assert.Equal(t, []int{2, 4, 5}, y.Shape())
	for i := 0; i < 2; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 5; k++ {
				assert.Equal(t, x.Get(i+1, j, k), y.Get(i, j, k))
			}
		}
	}
}

func TestTensor_Select(t *testing.T) {
	x := NewTensor([]float32{1, 2, 3, 4, 5, 6}, 3, 2)
	y := x.Select([]int{2, 0})
	assert.Equal(t, []int{2, 2}, y.Shape())
	assert.Equal(t, []float32{5, 6, 1, 2}, y.Data())
	// source shape untouched
	assert.Equal(t, []int{3, 2}, x.Shape())
}

func TestTensor_Empty(t *testing.T) {
	x := Zeros(7, 3, 32, 32)
	require.NoError(t, x.SetAxes("bchw"))
	empty := x.EmptyClone().(*Tensor)
	assert.Equal(t, 7, empty.Len())
	assert.Equal(t, x.Shape(), empty.Shape())
	assert.Equal(t, "bchw", empty.Axes())
	assert.Empty(t, empty.Data())
	assert.Len(t, x.Data(), 7*3*32*32)
}

func TestTensor_SetAxes(t *testing.T) {
	x := Zeros(2, 3)
	assert.True(t, errors.Is(x.SetAxes("bchw"), errors.NotValid))
	assert.True(t, errors.Is(x.SetAxes("bb"), errors.NotValid))
	assert.NoError(t, x.SetAxes("bf"))
	assert.Equal(t, "bf", x.Axes())
}

func TestTensor_MinMax(t *testing.T) {
	x := NewTensor([]float32{3, -1, 8, 2}, 4)
	assert.Equal(t, float32(-1), x.Min())
	assert.Equal(t, float32(8), x.Max())
	assert.Panics(t, func() { Zeros(0).Min() })
}

func TestFromRows(t *testing.T) {
	x, err := FromRows([][]float32{{1, 2}, {3, 4}, {5, 6}})
	assert.NoError(t, err)
	assert.Equal(t, []int{3, 2}, x.Shape())
	assert.Equal(t, float32(4), x.Get(1, 1))
	_, err = FromRows([][]float32{{1, 2}, {3}})
	assert.True(t, errors.Is(err, errors.NotValid))
}

func TestNewTensor_ShapeMismatch(t *testing.T) {
	assert.Panics(t, func() { NewTensor([]float32{1, 2, 3}, 2, 2) })
}

func TestComposite(t *testing.T) {
	image := Zeros(4, 1, 2, 2)
	tag := NewTensor([]float32{1, 0, 1, 0}, 4, 1)
	c, err := NewComposite(Member{Name: "image", Tensor: image}, Member{Name: "tag", Tensor: tag})
	require.NoError(t, err)
	assert.Equal(t, 4, c.Len())
	assert.Equal(t, []string{"image", "tag"}, c.Names())
	got, ok := c.Get("tag")
	assert.True(t, ok)
	assert.Same(t, tag, got)
	assert.Equal(t, []*Tensor{image, tag}, c.Tensors())

	empty := c.EmptyClone().(*Composite)
	assert.Equal(t, []string{"image", "tag"}, empty.Names())
	assert.Equal(t, 4, empty.Len())
	for _, member := range empty.Tensors() {
		assert.Empty(t, member.Data())
	}

	selected := c.Select([]int{1, 3})
	assert.Equal(t, 2, selected.Len())
	got, _ = selected.Get("tag")
	assert.Equal(t, []float32{0, 0}, got.Data())
}

func TestNewComposite_Invalid(t *testing.T) {
	_, err := NewComposite()
	assert.True(t, errors.Is(err, errors.NotValid))
	_, err = NewComposite(Member{Name: "a", Tensor: Zeros(2)}, Member{Name: "b", Tensor: Zeros(3)})
	assert.True(t, errors.Is(err, errors.NotValid))
	_, err = NewComposite(Member{Name: "a", Tensor: Zeros(2)}, Member{Name: "a", Tensor: Zeros(2)})
	assert.True(t, errors.Is(err, errors.NotValid))
	_, err = NewComposite(Member{Name: "a"})
	assert.True(t, errors.Is(err, errors.NotValid))
}

func TestNamed(t *testing.T) {
	x := Zeros(2)
	assert.Equal(t, []Member{{Tensor: x}}, Named(x))
	c, err := NewComposite(Member{Name: "a", Tensor: x})
	require.NoError(t, err)
	assert.Equal(t, []Member{{Name: "a", Tensor: x}}, Named(c))
}
