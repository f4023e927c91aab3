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
	"fmt"
	"reflect"
	"strings"

	"github.com/gorse-io/mldata/base"
	"github.com/gorse-io/mldata/common/preprocess"
	"github.com/gorse-io/mldata/common/tensor"
	"github.com/juju/errors"
	"github.com/samber/lo"
)

// WhichSet is the role of a data set, fixed at construction.
type WhichSet int

const (
	Train WhichSet = iota
	Valid
	Test
)

func (w WhichSet) String() string {
	switch w {
	case Train:
		return "train"
	case Valid:
		return "valid"
	case Test:
		return "test"
	default:
		return fmt.Sprintf("WhichSet(%d)", int(w))
	}
}

func (w WhichSet) valid() bool {
	return w == Train || w == Valid || w == Test
}

// ParseWhichSet parses "train", "valid" or "test".
func ParseWhichSet(s string) (WhichSet, error) {
	switch strings.ToLower(s) {
	case "train":
		return Train, nil
	case "valid", "validation":
		return Valid, nil
	case "test":
		return Test, nil
	default:
		return 0, errors.NotValidf("which set %q", s)
	}
}

// DataSet holds the inputs and optional targets of one set. A set without
// targets is unsupervised.
type DataSet struct {
	whichSet      WhichSet
	inputs        tensor.Data
	targets       tensor.Data
	probabilities []float32
}

type Option func(*DataSet) error

// WithProbabilities attaches per-sample sampling weights. Weights must be
// non-negative with a positive sum; they are normalized to sum to one.
func WithProbabilities(weights []float32) Option {
	return func(d *DataSet) error {
		if len(weights) != d.SampleCount() {
			return errors.NotValidf("%d weights for %d samples", len(weights), d.SampleCount())
		}
		if lo.SomeBy(weights, func(w float32) bool { return w < 0 }) {
			return errors.NotValidf("negative weight")
		}
		sum := lo.Sum(weights)
		if sum <= 0 {
			return errors.NotValidf("weights sum to %v", sum)
		}
		d.probabilities = lo.Map(weights, func(w float32, _ int) float32 {
			return w / sum
		})
		return nil
	}
}

// NewDataSet creates a data set. targets may be nil.
func NewDataSet(which WhichSet, inputs, targets tensor.Data, opts ...Option) (*DataSet, error) {
	if !which.valid() {
		return nil, errors.NotValidf("which set %v", which)
	}
	if isNil(inputs) {
		return nil, errors.NotValidf("nil inputs")
	}
	if isNil(targets) {
		targets = nil
	}
	d := &DataSet{
		whichSet: which,
		inputs:   inputs,
		targets:  targets,
	}
	n := inputs.Len()
	for _, member := range d.members() {
		if member.Tensor.Len() != n {
			return nil, errors.NotValidf("%s tensor %q has %d samples, expected %d",
				which, member.Name, member.Tensor.Len(), n)
		}
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, errors.Trace(err)
		}
	}
	return d, nil
}

func isNil(data tensor.Data) bool {
	if data == nil {
		return true
	}
	v := reflect.ValueOf(data)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

func (d *DataSet) members() []tensor.Member {
	members := tensor.Named(d.inputs)
	if d.targets != nil {
		members = append(members, tensor.Named(d.targets)...)
	}
	return members
}

// SampleCount returns the length of the first axis of the inputs.
func (d *DataSet) SampleCount() int {
	return d.inputs.Len()
}

func (d *DataSet) Inputs() tensor.Data {
	return d.inputs
}

// Targets returns nil for unsupervised data.
func (d *DataSet) Targets() tensor.Data {
	return d.targets
}

func (d *DataSet) IsSupervised() bool {
	return d.targets != nil
}

func (d *DataSet) WhichSet() WhichSet {
	return d.whichSet
}

// Probabilities returns the per-sample sampling weights. Sets built without
// WithProbabilities do not support weighted sampling.
func (d *DataSet) Probabilities() ([]float32, error) {
	if d.probabilities == nil {
		return nil, errors.NotImplementedf("weighted sampling of %s set", d.whichSet)
	}
	return d.probabilities, nil
}

// SampleIndices draws n sample indices. Weighted sets draw with replacement,
// the others draw uniformly without replacement (at most SampleCount).
func (d *DataSet) SampleIndices(rng base.RandomGenerator, n int) []int {
	if d.probabilities != nil {
		return rng.WeightedSample(d.probabilities, n)
	}
	return rng.Sample(0, d.SampleCount(), n)
}

// EmptyBatch returns a batch with the structure of this set, declared size
// equal to its sample count and no data.
func (d *DataSet) EmptyBatch() *Batch {
	b := &Batch{
		whichSet: d.whichSet,
		inputs:   d.inputs.EmptyClone(),
		size:     d.SampleCount(),
	}
	if d.targets != nil {
		b.targets = d.targets.EmptyClone()
	}
	return b
}

// Batch gathers the given samples into a new batch.
func (d *DataSet) Batch(indices []int) (*Batch, error) {
	for _, i := range indices {
		if i < 0 || i >= d.SampleCount() {
			return nil, errors.NotValidf("sample index %d out of [0, %d)", i, d.SampleCount())
		}
	}
	b := &Batch{
		whichSet: d.whichSet,
		inputs:   tensor.Select(d.inputs, indices),
		size:     len(indices),
	}
	if d.targets != nil {
		b.targets = tensor.Select(d.targets, indices)
	}
	return b, nil
}

// PreprocessConfig selects the pipelines applied by DataSet.Preprocess.
type PreprocessConfig struct {
	Input  *preprocess.Pipeline
	Target *preprocess.Pipeline
	// CanFit allows the pipelines to compute statistics from this set.
	CanFit bool
}

// InputKey and TargetKey name the statistics a pipeline keeps for a member of
// the inputs or the targets, so one pipeline may serve both roles.
func InputKey(member string) string {
	return "inputs/" + member
}

func TargetKey(member string) string {
	return "targets/" + member
}

// Preprocess transforms the tensors of the set in place. With CanFit, each
// pipeline is fit on this set first. Without it, stored statistics are used
// and left untouched; nothing is transformed if any of them is missing.
func (d *DataSet) Preprocess(cfg PreprocessConfig) error {
	if cfg.Target != nil && d.targets == nil {
		return errors.NotValidf("target preprocess on unsupervised %s set", d.whichSet)
	}
	type job struct {
		pipeline *preprocess.Pipeline
		key      string
		member   tensor.Member
	}
	var jobs []job
	if cfg.Input != nil {
		for _, member := range tensor.Named(d.inputs) {
			jobs = append(jobs, job{cfg.Input, InputKey(member.Name), member})
		}
	}
	if cfg.Target != nil {
		for _, member := range tensor.Named(d.targets) {
			jobs = append(jobs, job{cfg.Target, TargetKey(member.Name), member})
		}
	}
	if !cfg.CanFit {
		for _, j := range jobs {
			if !j.pipeline.Fitted(j.key) {
				return base.InvalidOperationf("apply preprocess to %s set tensor %q without fitted statistics",
					d.whichSet, j.key)
			}
		}
	}
	for _, j := range jobs {
		var err error
		if cfg.CanFit {
			err = j.pipeline.Fit(j.key, j.member.Tensor)
		} else {
			err = j.pipeline.Apply(j.key, j.member.Tensor)
		}
		if err != nil {
			return errors.Annotatef(err, "preprocess %s set tensor %q", d.whichSet, j.key)
		}
	}
	return nil
}

func (d *DataSet) String() string {
	mode := "unsupervised"
	if d.IsSupervised() {
		mode = "supervised"
	}
	return fmt.Sprintf("%s set: %d samples, %s", d.whichSet, d.SampleCount(), mode)
}

// Data sets are views over external data. They are rebuilt from their source
// and never persisted.

func (d *DataSet) MarshalJSON() ([]byte, error) {
	return nil, base.NotSerializablef("%s set", d.whichSet)
}

func (d *DataSet) UnmarshalJSON([]byte) error {
	return base.NotSerializablef("%s set", d.whichSet)
}

func (d *DataSet) MarshalText() ([]byte, error) {
	return nil, base.NotSerializablef("%s set", d.whichSet)
}

func (d *DataSet) UnmarshalText([]byte) error {
	return base.NotSerializablef("%s set", d.whichSet)
}

func (d *DataSet) MarshalBinary() ([]byte, error) {
	return nil, base.NotSerializablef("%s set", d.whichSet)
}

func (d *DataSet) UnmarshalBinary([]byte) error {
	return base.NotSerializablef("%s set", d.whichSet)
}

func (d *DataSet) GobEncode() ([]byte, error) {
	return nil, base.NotSerializablef("%s set", d.whichSet)
}

func (d *DataSet) GobDecode([]byte) error {
	return base.NotSerializablef("%s set", d.whichSet)
}

// Batch is a group of samples shaped like the set it was taken from.
type Batch struct {
	whichSet WhichSet
	inputs   tensor.Data
	targets  tensor.Data
	size     int
}

// SampleCount returns the declared number of samples.
func (b *Batch) SampleCount() int {
	return b.size
}

func (b *Batch) Inputs() tensor.Data {
	return b.inputs
}

func (b *Batch) Targets() tensor.Data {
	return b.targets
}

func (b *Batch) WhichSet() WhichSet {
	return b.whichSet
}

// DataLen returns the number of values actually held by the batch.
func (b *Batch) DataLen() int {
	n := 0
	for _, t := range b.inputs.Tensors() {
		n += len(t.Data())
	}
	if b.targets != nil {
		for _, t := range b.targets.Tensors() {
			n += len(t.Data())
		}
	}
	return n
}
