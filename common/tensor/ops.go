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
	"github.com/juju/errors"
)

// Rescale maps t linearly from [dataMin, dataMax] into [min, max] in place:
//
//	x = (x - dataMin) * (max - min) / (dataMax - dataMin) + min
//
// dataRange is either empty, in which case the range is taken from t, or
// exactly {dataMin, dataMax}. A degenerate range is rejected.
func Rescale(t *Tensor, min, max float32, dataRange ...float32) error {
	var dataMin, dataMax float32
	switch len(dataRange) {
	case 0:
		if len(t.data) == 0 {
			return nil
		}
		dataMin, dataMax = t.Min(), t.Max()
	case 2:
		dataMin, dataMax = dataRange[0], dataRange[1]
	default:
		return errors.NotValidf("data range of %d values", len(dataRange))
	}
	if dataMax == dataMin {
		return errors.NotValidf("degenerate data range [%v, %v]", dataMin, dataMax)
	}
	scale := (max - min) / (dataMax - dataMin)
	for i := range t.data {
		t.data[i] = (t.data[i]-dataMin)*scale + min
	}
	return nil
}

// Binarize sets values below threshold to 0 and the rest to 1, in place.
func Binarize(t *Tensor, threshold float32) *Tensor {
	for i := range t.data {
		if t.data[i] < threshold {
			t.data[i] = 0
		} else {
			t.data[i] = 1
		}
	}
	return t
}
