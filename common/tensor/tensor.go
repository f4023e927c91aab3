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
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/juju/errors"
)

// Data is held by a data set as inputs or targets. It is either a single
// *Tensor or a *Composite of named tensors.
type Data interface {
	// Len returns the number of samples (the length of the first axis).
	Len() int
	// EmptyClone returns a value with the same structure and shape metadata
	// but no data.
	EmptyClone() Data
	// Tensors returns the member tensors in order.
	Tensors() []*Tensor
}

// Tensor is a dense float32 array. The first axis indexes samples.
type Tensor struct {
	data  []float32
	shape []int
	axes  string
}

// NewTensor wraps data without copying. It panics if len(data) does not match
// the product of shape.
func NewTensor(data []float32, shape ...int) *Tensor {
	if size := sizeOf(shape); size != len(data) {
		panic(fmt.Sprintf("tensor: %d values do not fit shape %v", len(data), shape))
	}
	return &Tensor{
		data:  data,
		shape: shape,
	}
}

// Zeros creates a tensor filled with zeros.
func Zeros(shape ...int) *Tensor {
	return &Tensor{
		data:  make([]float32, sizeOf(shape)),
		shape: shape,
	}
}

// FromRows stacks equal-length rows into a 2-D tensor.
func FromRows(rows [][]float32) (*Tensor, error) {
	if len(rows) == 0 {
		return Zeros(0, 0), nil
	}
	width := len(rows[0])
	data := make([]float32, 0, len(rows)*width)
	for i, row := range rows {
		if len(row) != width {
			return nil, errors.NotValidf("row %d has %d columns, expected %d", i, len(row), width)
		}
		data = append(data, row...)
	}
	return NewTensor(data, len(rows), width), nil
}

func sizeOf(shape []int) int {
	n := 1
	for _, s := range shape {
		n *= s
	}
	return n
}

// SetAxes names the axes of the tensor, e.g. "bchw". Each character names one
// axis and must be unique.
func (t *Tensor) SetAxes(axes string) error {
	if axes == "" {
		t.axes = ""
		return nil
	}
	if len(axes) != len(t.shape) {
		return errors.NotValidf("axes %q for a tensor of rank %d", axes, len(t.shape))
	}
	if mapset.NewSet([]rune(axes)...).Cardinality() != len([]rune(axes)) {
		return errors.NotValidf("duplicated axis in %q", axes)
	}
	t.axes = axes
	return nil
}

// Axes returns the axis layout, empty if unspecified.
func (t *Tensor) Axes() string {
	return t.axes
}

func (t *Tensor) Shape() []int {
	return t.shape
}

func (t *Tensor) Data() []float32 {
	return t.data
}

// Size returns the number of elements described by the shape.
func (t *Tensor) Size() int {
	return sizeOf(t.shape)
}

// Len returns the length of the first axis. Scalars have no samples.
func (t *Tensor) Len() int {
	if len(t.shape) == 0 {
		return 0
	}
	return t.shape[0]
}

// RowSize returns the number of values in one sample.
func (t *Tensor) RowSize() int {
	if len(t.shape) == 0 {
		return 1
	}
	return sizeOf(t.shape[1:])
}

// Tensors implements Data.
func (t *Tensor) Tensors() []*Tensor {
	return []*Tensor{t}
}

// EmptyClone implements Data.
func (t *Tensor) EmptyClone() Data {
	return t.Empty()
}

// Empty keeps shape and axes, drops data.
func (t *Tensor) Empty() *Tensor {
	shape := make([]int, len(t.shape))
	copy(shape, t.shape)
	return &Tensor{
		data:  []float32{},
		shape: shape,
		axes:  t.axes,
	}
}

// Clone returns a deep copy.
func (t *Tensor) Clone() *Tensor {
	newData := make([]float32, len(t.data))
	copy(newData, t.data)
	shape := make([]int, len(t.shape))
	copy(shape, t.shape)
	return &Tensor{
		data:  newData,
		shape: shape,
		axes:  t.axes,
	}
}

// Get returns the value at the given indices.
func (t *Tensor) Get(indices ...int) float32 {
	offset := 0
	for i, idx := range indices {
		offset = offset*t.shape[i] + idx
	}
	for _, s := range t.shape[len(indices):] {
		offset *= s
	}
	return t.data[offset]
}

// Slice returns samples [start, end) sharing storage with t.
func (t *Tensor) Slice(start, end int) *Tensor {
	rowSize := t.RowSize()
	shape := make([]int, len(t.shape))
	copy(shape, t.shape)
	shape[0] = end - start
	return &Tensor{
		data:  t.data[start*rowSize : end*rowSize],
		shape: shape,
		axes:  t.axes,
	}
}

// Select gathers samples by index into a new tensor.
func (t *Tensor) Select(indices []int) *Tensor {
	rowSize := t.RowSize()
	data := make([]float32, 0, len(indices)*rowSize)
	for _, i := range indices {
		data = append(data, t.data[i*rowSize:(i+1)*rowSize]...)
	}
	shape := make([]int, len(t.shape))
	copy(shape, t.shape)
	shape[0] = len(indices)
	return &Tensor{
		data:  data,
		shape: shape,
		axes:  t.axes,
	}
}

// Min returns the smallest value. Panics on an empty tensor.
func (t *Tensor) Min() float32 {
	if len(t.data) == 0 {
		panic("tensor: min of empty tensor")
	}
	minimum := t.data[0]
	for _, v := range t.data[1:] {
		minimum = math32.Min(minimum, v)
	}
	return minimum
}

// Max returns the largest value. Panics on an empty tensor.
func (t *Tensor) Max() float32 {
	if len(t.data) == 0 {
		panic("tensor: max of empty tensor")
	}
	maximum := t.data[0]
	for _, v := range t.data[1:] {
		maximum = math32.Max(maximum, v)
	}
	return maximum
}

func (t *Tensor) String() string {
	builder := strings.Builder{}
	builder.WriteString("[")
	if len(t.data) <= 10 {
		for i := 0; i < len(t.data); i++ {
			builder.WriteString(fmt.Sprint(t.data[i]))
			if i != len(t.data)-1 {
				builder.WriteString(", ")
			}
		}
	} else {
		for i := 0; i < 5; i++ {
			builder.WriteString(fmt.Sprint(t.data[i]))
			builder.WriteString(", ")
		}
		builder.WriteString("..., ")
		for i := len(t.data) - 5; i < len(t.data); i++ {
			builder.WriteString(fmt.Sprint(t.data[i]))
			if i != len(t.data)-1 {
				builder.WriteString(", ")
			}
		}
	}
	builder.WriteString("]")
	return builder.String()
}
