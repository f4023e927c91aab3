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

package util

import (
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
)

func TestParseFloat(t *testing.T) {
	v, err := ParseFloat[float32](" 5.1")
	assert.NoError(t, err)
	assert.Equal(t, float32(5.1), v)
	_, err = ParseFloat[float64]("setosa")
	assert.True(t, errors.Is(err, errors.NotValid))
}

func TestParseFloats(t *testing.T) {
	values, err := ParseFloats[float32]([]string{"1", "2.5", "-3"})
	assert.NoError(t, err)
	assert.Equal(t, []float32{1, 2.5, -3}, values)
	_, err = ParseFloats[float32]([]string{"1", "x"})
	assert.True(t, errors.Is(err, errors.NotValid))
}
