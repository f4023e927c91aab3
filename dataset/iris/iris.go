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

// Package iris loads Fisher's iris flower data set as a DataSource.
package iris

import (
	"context"
	"encoding/csv"
	"io"
	"math"
	"os"

	"github.com/gorse-io/mldata/base"
	"github.com/gorse-io/mldata/base/log"
	"github.com/gorse-io/mldata/common/datautil"
	"github.com/gorse-io/mldata/common/preprocess"
	"github.com/gorse-io/mldata/common/tensor"
	"github.com/gorse-io/mldata/common/util"
	"github.com/gorse-io/mldata/dataset"
	"github.com/juju/errors"
	"go.uber.org/zap"
)

const (
	Name        = "iris"
	FeatureSize = 4
	DefaultURL  = "https://cdn.gorse.io/datasets/iris.zip"
	// DefaultDecompressFile is the data file inside the default archive.
	DefaultDecompressFile = "iris/iris.data"
)

// Classes in the order of their target columns.
var Classes = []string{"Iris-setosa", "Iris-versicolor", "Iris-virginica"}

type Options struct {
	URL            string
	DecompressFile string
	// DataDir overrides the data root of Resolver.
	DataDir string
	// Resolver fetches the data file. The default resolver is used if nil.
	Resolver *datautil.Resolver

	Seed          int64
	TrainFraction float64
	ValidFraction float64
	// Standardize scales every feature to zero mean and unit variance using
	// statistics of the train set.
	Standardize bool
}

func DefaultOptions() Options {
	return Options{
		URL:            DefaultURL,
		DecompressFile: DefaultDecompressFile,
		TrainFraction:  0.6,
		ValidFraction:  0.2,
		Standardize:    true,
	}
}

func (opts *Options) validate() error {
	if opts.TrainFraction <= 0 || opts.ValidFraction < 0 || opts.TrainFraction+opts.ValidFraction > 1 {
		return errors.NotValidf("fractions train=%v valid=%v", opts.TrainFraction, opts.ValidFraction)
	}
	return nil
}

// Load downloads the data file if needed, splits it into train, valid and
// test sets by a seeded shuffle and returns the resulting DataSource.
func Load(ctx context.Context, opts Options) (*dataset.DataSource, error) {
	if err := opts.validate(); err != nil {
		return nil, errors.Trace(err)
	}
	asset := datautil.AssetOptions{
		Name:           Name,
		URL:            opts.URL,
		DataDir:        opts.DataDir,
		DecompressFile: opts.DecompressFile,
	}
	var (
		path string
		err  error
	)
	if opts.Resolver != nil {
		path, err = opts.Resolver.GetDataPath(ctx, asset)
	} else {
		path, err = datautil.GetDataPath(ctx, asset)
	}
	if err != nil {
		return nil, errors.Trace(err)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer f.Close()
	features, labels, err := Parse(f)
	if err != nil {
		return nil, errors.Annotatef(err, "parse %s", path)
	}
	log.Logger().Info("load data set",
		zap.String("name", Name), zap.String("path", path), zap.Int("samples", len(features)))
	return NewDataSource(features, labels, opts)
}

// Parse reads rows of four measurements followed by a class label. Unknown
// labels are rejected.
func Parse(r io.Reader) ([][]float32, []int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = FeatureSize + 1
	reader.ReuseRecord = true
	dict := dataset.NewLabelDict(Classes...)
	var (
		features [][]float32
		labels   []int
	)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, nil, errors.NotValidf("%v", err)
		}
		values, err := util.ParseFloats[float32](row[:FeatureSize])
		if err != nil {
			return nil, nil, errors.Annotatef(err, "row %d", len(features))
		}
		if _, ok := dict.Lookup(row[FeatureSize]); !ok {
			return nil, nil, errors.NotValidf("class %q in row %d", row[FeatureSize], len(features))
		}
		features = append(features, values)
		labels = append(labels, dict.Id(row[FeatureSize]))
	}
	for i, class := range dict.Labels() {
		log.Logger().Debug("parse class", zap.String("class", class), zap.Int("samples", dict.Freq(i)))
	}
	return features, labels, nil
}

// NewDataSource splits parsed samples by opts and builds the DataSource.
// Inputs are (n, 4) tensors, targets one-hot (n, 3) tensors.
func NewDataSource(features [][]float32, labels []int, opts Options) (*dataset.DataSource, error) {
	if err := opts.validate(); err != nil {
		return nil, errors.Trace(err)
	}
	if len(features) != len(labels) {
		return nil, errors.NotValidf("%d samples with %d labels", len(features), len(labels))
	}
	inputs, err := tensor.FromRows(features)
	if err != nil {
		return nil, errors.Trace(err)
	}
	targets, err := dataset.NewLabelDict(Classes...).OneHot(labels)
	if err != nil {
		return nil, errors.Trace(err)
	}

	n := len(features)
	perm := base.NewRandomGenerator(opts.Seed).Perm(n)
	nTrain := int(math.Round(float64(n) * opts.TrainFraction))
	nValid := min(int(math.Round(float64(n)*opts.ValidFraction)), n-nTrain)
	cfg := dataset.Config{
		Metadata: dataset.Metadata{
			Name:        Name,
			Classes:     Classes,
			FeatureSize: FeatureSize,
		},
	}
	split := []struct {
		which      dataset.WhichSet
		start, end int
		set        **dataset.DataSet
	}{
		{dataset.Train, 0, nTrain, &cfg.TrainSet},
		{dataset.Valid, nTrain, nTrain + nValid, &cfg.ValidSet},
		{dataset.Test, nTrain + nValid, n, &cfg.TestSet},
	}
	for _, s := range split {
		if s.start == s.end {
			continue
		}
		indices := perm[s.start:s.end]
		*s.set, err = dataset.NewDataSet(s.which, inputs.Select(indices), targets.Select(indices))
		if err != nil {
			return nil, errors.Trace(err)
		}
	}
	if opts.Standardize {
		cfg.InputPreprocess, err = preprocess.NewPipeline(preprocess.NewStandardize())
		if err != nil {
			return nil, errors.Trace(err)
		}
	}
	return dataset.NewDataSource(cfg)
}
