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
	"github.com/gorse-io/mldata/common/tensor"
	"github.com/juju/errors"
)

// LabelDict assigns dense indices to class labels in order of appearance and
// counts how often each label was seen.
type LabelDict struct {
	index  map[string]int
	labels []string
	freq   []int
}

func NewLabelDict(labels ...string) *LabelDict {
	d := &LabelDict{index: make(map[string]int)}
	for _, label := range labels {
		d.add(label)
	}
	return d
}

func (d *LabelDict) add(label string) int {
	if i, ok := d.index[label]; ok {
		return i
	}
	i := len(d.labels)
	d.index[label] = i
	d.labels = append(d.labels, label)
	d.freq = append(d.freq, 0)
	return i
}

// Id returns the index of label, adding it if unseen, and counts it.
func (d *LabelDict) Id(label string) int {
	i := d.add(label)
	d.freq[i]++
	return i
}

// Lookup returns the index of a known label without counting it.
func (d *LabelDict) Lookup(label string) (int, bool) {
	i, ok := d.index[label]
	return i, ok
}

func (d *LabelDict) Count() int {
	return len(d.labels)
}

// Labels returns labels ordered by index.
func (d *LabelDict) Labels() []string {
	return append([]string(nil), d.labels...)
}

func (d *LabelDict) Freq(id int) int {
	if id < 0 || id >= len(d.freq) {
		return 0
	}
	return d.freq[id]
}

// OneHot encodes label indices as a (len(ids), Count()) tensor.
func (d *LabelDict) OneHot(ids []int) (*tensor.Tensor, error) {
	t := tensor.Zeros(len(ids), d.Count())
	data := t.Data()
	for i, id := range ids {
		if id < 0 || id >= d.Count() {
			return nil, errors.NotValidf("label index %d", id)
		}
		data[i*d.Count()+id] = 1
	}
	return t, nil
}
