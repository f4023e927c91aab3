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
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/gorse-io/mldata/base"
	"github.com/gorse-io/mldata/base/log"
	"github.com/gorse-io/mldata/common/preprocess"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Metadata are constants of a data set family.
type Metadata struct {
	Name        string
	Classes     []string
	FeatureSize int
	// ImageSize lists the size of every image axis except the batch axis.
	ImageSize []int
	// ImageAxes is the axis order including the batch axis, e.g. "bchw".
	ImageAxes string
}

func (m *Metadata) validate() error {
	if m.FeatureSize < 0 {
		return errors.NotValidf("feature size %d", m.FeatureSize)
	}
	if mapset.NewSet(m.Classes...).Cardinality() != len(m.Classes) {
		return errors.NotValidf("duplicated classes in %v", m.Classes)
	}
	for _, size := range m.ImageSize {
		if size <= 0 {
			return errors.NotValidf("image size %v", m.ImageSize)
		}
	}
	if m.ImageAxes != "" {
		axes := []rune(m.ImageAxes)
		if axes[0] != 'b' {
			return errors.NotValidf("image axes %q must start with the batch axis", m.ImageAxes)
		}
		if mapset.NewSet(axes...).Cardinality() != len(axes) {
			return errors.NotValidf("duplicated axis in %q", m.ImageAxes)
		}
		if len(m.ImageSize) > 0 && len(axes) != len(m.ImageSize)+1 {
			return errors.NotValidf("image axes %q for image size %v", m.ImageAxes, m.ImageSize)
		}
	}
	return nil
}

// Config is everything a DataSource is built from.
type Config struct {
	Metadata

	TrainSet *DataSet
	ValidSet *DataSet
	TestSet  *DataSet

	InputPreprocess  *preprocess.Pipeline
	TargetPreprocess *preprocess.Pipeline
}

// DataSource owns the train, valid and test sets of one experiment and the
// pipelines that preprocess them.
type DataSource struct {
	meta             Metadata
	trainSet         *DataSet
	validSet         *DataSet
	testSet          *DataSet
	inputPreprocess  *preprocess.Pipeline
	targetPreprocess *preprocess.Pipeline
}

// NewDataSource validates cfg and preprocesses its sets. Pipelines are fit on
// the train set only, then applied unchanged to the valid and test sets. Any
// failure aborts construction.
func NewDataSource(cfg Config) (*DataSource, error) {
	if err := cfg.Metadata.validate(); err != nil {
		return nil, errors.Trace(err)
	}
	for which, set := range map[WhichSet]*DataSet{Train: cfg.TrainSet, Valid: cfg.ValidSet, Test: cfg.TestSet} {
		if set != nil && set.WhichSet() != which {
			return nil, errors.NotValidf("%s set given as %s set", set.WhichSet(), which)
		}
	}
	d := &DataSource{
		meta:             cfg.Metadata,
		trainSet:         cfg.TrainSet,
		validSet:         cfg.ValidSet,
		testSet:          cfg.TestSet,
		inputPreprocess:  cfg.InputPreprocess,
		targetPreprocess: cfg.TargetPreprocess,
	}
	if err := d.preprocess(); err != nil {
		return nil, errors.Trace(err)
	}
	return d, nil
}

func (d *DataSource) preprocess() error {
	if d.inputPreprocess == nil && d.targetPreprocess == nil {
		return nil
	}
	for _, set := range d.Sets() {
		canFit := set.WhichSet() == Train
		cfg := PreprocessConfig{
			Input:  d.inputPreprocess,
			Target: d.targetPreprocess,
			CanFit: canFit,
		}
		if err := set.Preprocess(cfg); err != nil {
			return errors.Annotatef(err, "data source %q", d.meta.Name)
		}
		log.Logger().Debug("preprocess data set",
			zap.String("data_source", d.meta.Name),
			zap.String("which_set", set.WhichSet().String()),
			zap.Int("samples", set.SampleCount()),
			zap.Bool("fit", canFit))
	}
	return nil
}

// Sets returns the present sets in train, valid, test order.
func (d *DataSource) Sets() []*DataSet {
	return lo.Filter([]*DataSet{d.trainSet, d.validSet, d.testSet}, func(set *DataSet, _ int) bool {
		return set != nil
	})
}

func (d *DataSource) TrainSet() *DataSet {
	return d.trainSet
}

func (d *DataSource) ValidSet() *DataSet {
	return d.validSet
}

func (d *DataSource) TestSet() *DataSet {
	return d.testSet
}

func (d *DataSource) InputPreprocess() *preprocess.Pipeline {
	return d.inputPreprocess
}

func (d *DataSource) TargetPreprocess() *preprocess.Pipeline {
	return d.targetPreprocess
}

func (d *DataSource) Name() string {
	return d.meta.Name
}

func (d *DataSource) Classes() []string {
	return append([]string(nil), d.meta.Classes...)
}

func (d *DataSource) NumClasses() int {
	return len(d.meta.Classes)
}

// ClassIndex returns the position of label in Classes.
func (d *DataSource) ClassIndex(label string) (int, error) {
	index := lo.IndexOf(d.meta.Classes, label)
	if index < 0 {
		return -1, errors.NotFoundf("class %q", label)
	}
	return index, nil
}

func (d *DataSource) FeatureSize() int {
	return d.meta.FeatureSize
}

func (d *DataSource) ImageSize() []int {
	return append([]int(nil), d.meta.ImageSize...)
}

func (d *DataSource) ImageAxes() string {
	return d.meta.ImageAxes
}

// ImageSizeAt returns the size of the image axis at index, batch axis excluded.
func (d *DataSource) ImageSizeAt(index int) (int, error) {
	if index < 0 || index >= len(d.meta.ImageSize) {
		return 0, errors.NotValidf("image axis index %d", index)
	}
	return d.meta.ImageSize[index], nil
}

// ImageSizeOf returns the size of a named image axis such as 'c' in "bchw".
// The batch axis has no image size.
func (d *DataSource) ImageSizeOf(axis rune) (int, error) {
	axes := []rune(d.meta.ImageAxes)
	if len(axes) == 0 {
		return 0, base.UnknownAxisf("%q in empty image axes", axis)
	}
	index := lo.IndexOf(axes[1:], axis)
	if index < 0 {
		return 0, base.UnknownAxisf("%q in image axes %q", axis, d.meta.ImageAxes)
	}
	return d.ImageSizeAt(index)
}

func (d *DataSource) MarshalJSON() ([]byte, error) {
	return nil, base.NotSerializablef("data source %q", d.meta.Name)
}

func (d *DataSource) UnmarshalJSON([]byte) error {
	return base.NotSerializablef("data source %q", d.meta.Name)
}

func (d *DataSource) MarshalText() ([]byte, error) {
	return nil, base.NotSerializablef("data source %q", d.meta.Name)
}

func (d *DataSource) UnmarshalText([]byte) error {
	return base.NotSerializablef("data source %q", d.meta.Name)
}

func (d *DataSource) MarshalBinary() ([]byte, error) {
	return nil, base.NotSerializablef("data source %q", d.meta.Name)
}

func (d *DataSource) UnmarshalBinary([]byte) error {
	return base.NotSerializablef("data source %q", d.meta.Name)
}

func (d *DataSource) GobEncode() ([]byte, error) {
	return nil, base.NotSerializablef("data source %q", d.meta.Name)
}

func (d *DataSource) GobDecode([]byte) error {
	return base.NotSerializablef("data source %q", d.meta.Name)
}
