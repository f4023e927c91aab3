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
	"strconv"
	"strings"

	"github.com/juju/errors"
	"golang.org/x/exp/constraints"
)

// ParseFloat parses a decimal cell, ignoring surrounding spaces.
func ParseFloat[T constraints.Float](s string) (T, error) {
	var zero T
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return zero, errors.NotValidf("number %q", s)
	}
	return T(v), nil
}

// ParseFloats parses every cell of a row.
func ParseFloats[T constraints.Float](cells []string) ([]T, error) {
	values := make([]T, len(cells))
	for i, cell := range cells {
		v, err := ParseFloat[T](cell)
		if err != nil {
			return nil, errors.Annotatef(err, "column %d", i)
		}
		values[i] = v
	}
	return values, nil
}
