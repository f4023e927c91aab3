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

package dataset

import (
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
)

func TestLabelDict(t *testing.T) {
	dict := NewLabelDict()
	assert.Equal(t, 0, dict.Id("a"))
	assert.Equal(t, 1, dict.Id("b"))
	assert.Equal(t, 1, dict.Id("b"))
	assert.Equal(t, 2, dict.Id("c"))
	assert.Equal(t, 2, dict.Id("c"))
	assert.Equal(t, 2, dict.Id("c"))
	assert.Equal(t, 3, dict.Count())
	assert.Equal(t, 1, dict.Freq(0))
	assert.Equal(t, 2, dict.Freq(1))
	assert.Equal(t, 3, dict.Freq(2))
	assert.Equal(t, 0, dict.Freq(3))
	assert.Equal(t, []string{"a", "b", "c"}, dict.Labels())
}

func TestLabelDict_Predefined(t *testing.T) {
	dict := NewLabelDict("x", "y")
	assert.Equal(t, 0, dict.Freq(0))
	i, ok := dict.Lookup("y")
	assert.True(t, ok)
	assert.Equal(t, 1, i)
	_, ok = dict.Lookup("z")
	assert.False(t, ok)
}

func TestLabelDict_OneHot(t *testing.T) {
	dict := NewLabelDict("x", "y", "z")
	onehot, err := dict.OneHot([]int{2, 0})
	assert.NoError(t, err)
	assert.Equal(t, []int{2, 3}, onehot.Shape())
	assert.Equal(t, []float32{0, 0, 1, 1, 0, 0}, onehot.Data())
	_, err = dict.OneHot([]int{3})
	assert.True(t, errors.Is(err, errors.NotValid))
}
