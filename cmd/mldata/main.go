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

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gorse-io/mldata/base"
	"github.com/gorse-io/mldata/base/log"
	"github.com/gorse-io/mldata/cmd/version"
	"github.com/gorse-io/mldata/common/datautil"
	"github.com/gorse-io/mldata/common/tensor"
	"github.com/gorse-io/mldata/config"
	"github.com/gorse-io/mldata/dataset"
	"github.com/gorse-io/mldata/dataset/iris"
	"github.com/juju/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var conf *config.Config

var rootCommand = &cobra.Command{
	Use:   "mldata",
	Short: "Download, decompress and inspect machine learning data sets.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		configPath, _ := flags.GetString("config")
		var err error
		if conf, err = config.LoadConfig(configPath); err != nil {
			return errors.Trace(err)
		}
		if flags.Changed("data-dir") {
			conf.DataDir, _ = flags.GetString("data-dir")
		}
		// setup logger
		debug, _ := flags.GetBool("debug")
		opts := log.Options{
			Path:       conf.Log.Path,
			MaxSize:    conf.Log.MaxSize,
			MaxAge:     conf.Log.MaxAge,
			MaxBackups: conf.Log.MaxBackups,
		}
		if flags.Changed("log-path") {
			opts = log.OptionsFromFlags(flags)
		}
		log.SetLoggerWithOptions(opts, debug || conf.Log.Debug)
		log.Logger().Debug("load config", zap.String("config", configPath), zap.String("data_dir", conf.DataDir))
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		if showVersion, _ := cmd.Flags().GetBool("version"); showVersion {
			fmt.Print(version.BuildInfo())
			return
		}
		_ = cmd.Help()
	},
}

var fetchCommand = &cobra.Command{
	Use:   "fetch",
	Short: "Download a data asset into the data directory and print its path.",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		url, _ := cmd.Flags().GetString("url")
		decompressFile, _ := cmd.Flags().GetString("decompress")
		resolver := datautil.NewResolver(conf.DataDir, conf.Download)
		path, err := resolver.GetDataPath(cmd.Context(), datautil.AssetOptions{
			Name:           name,
			URL:            url,
			DecompressFile: decompressFile,
		})
		if err != nil {
			return errors.Trace(err)
		}
		fmt.Println(path)
		return nil
	},
}

var irisCommand = &cobra.Command{
	Use:   "iris",
	Short: "Load the iris data set and summarize its splits.",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		opts := iris.DefaultOptions()
		opts.URL, _ = flags.GetString("url")
		opts.DecompressFile, _ = flags.GetString("decompress")
		opts.Seed, _ = flags.GetInt64("seed")
		opts.TrainFraction, _ = flags.GetFloat64("train")
		opts.ValidFraction, _ = flags.GetFloat64("valid")
		noStandardize, _ := flags.GetBool("no-standardize")
		opts.Standardize = !noStandardize
		opts.Resolver = datautil.NewResolver(conf.DataDir, conf.Download)
		source, err := iris.Load(cmd.Context(), opts)
		if err != nil {
			return errors.Trace(err)
		}
		setNames, _ := flags.GetStringSlice("set")
		sets, err := selectSets(source, setNames)
		if err != nil {
			return errors.Trace(err)
		}
		fmt.Printf("%s: %d features, classes %s\n",
			source.Name(), source.FeatureSize(), strings.Join(source.Classes(), ", "))
		if err = renderSets(os.Stdout, sets); err != nil {
			return errors.Trace(err)
		}
		preview, _ := flags.GetInt("preview")
		if preview <= 0 {
			return nil
		}
		return errors.Trace(renderPreview(os.Stdout, source, sets, base.NewRandomGenerator(opts.Seed), preview))
	},
}

var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "Print the version of mldata.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print(version.BuildInfo())
	},
}

// selectSets returns the sets named in names, or every set if names is empty.
func selectSets(source *dataset.DataSource, names []string) ([]*dataset.DataSet, error) {
	if len(names) == 0 {
		return source.Sets(), nil
	}
	var sets []*dataset.DataSet
	for _, name := range names {
		which, err := dataset.ParseWhichSet(name)
		if err != nil {
			return nil, errors.Trace(err)
		}
		set, ok := lo.Find(source.Sets(), func(set *dataset.DataSet) bool {
			return set.WhichSet() == which
		})
		if !ok {
			return nil, errors.NotFoundf("%s set of %s", which, source.Name())
		}
		sets = append(sets, set)
	}
	return sets, nil
}

func renderSets(w io.Writer, sets []*dataset.DataSet) error {
	table := tablewriter.NewWriter(w)
	table.Header("set", "samples", "supervised", "inputs", "targets")
	for _, set := range sets {
		targets := "-"
		if set.IsSupervised() {
			targets = shapes(set.Targets())
		}
		if err := table.Append([]string{
			set.WhichSet().String(),
			fmt.Sprint(set.SampleCount()),
			fmt.Sprint(set.IsSupervised()),
			shapes(set.Inputs()),
			targets,
		}); err != nil {
			return errors.Trace(err)
		}
	}
	return table.Render()
}

// renderPreview prints n randomly drawn samples of every set with their class.
func renderPreview(w io.Writer, source *dataset.DataSource, sets []*dataset.DataSet, rng base.RandomGenerator, n int) error {
	table := tablewriter.NewWriter(w)
	table.Header("set", "sample", "inputs", "class")
	for _, set := range sets {
		indices := set.SampleIndices(rng, n)
		batch, err := set.Batch(indices)
		if err != nil {
			return errors.Trace(err)
		}
		inputs, ok := batch.Inputs().(*tensor.Tensor)
		if !ok {
			continue
		}
		for i, index := range indices {
			class := "-"
			if targets, ok := batch.Targets().(*tensor.Tensor); ok {
				class = className(source, targets, i)
			}
			if err = table.Append([]string{
				set.WhichSet().String(),
				fmt.Sprint(index),
				fmt.Sprintf("%.3f", inputs.Slice(i, i+1).Data()),
				class,
			}); err != nil {
				return errors.Trace(err)
			}
		}
	}
	return table.Render()
}

// className decodes the one-hot target row i.
func className(source *dataset.DataSource, targets *tensor.Tensor, i int) string {
	if targets.RowSize() != source.NumClasses() {
		return "-"
	}
	best := 0
	for j := 1; j < targets.RowSize(); j++ {
		if targets.Get(i, j) > targets.Get(i, best) {
			best = j
		}
	}
	return source.Classes()[best]
}

func shapes(data tensor.Data) string {
	return strings.Join(lo.Map(data.Tensors(), func(t *tensor.Tensor, _ int) string {
		return fmt.Sprint(t.Shape())
	}), " ")
}

func init() {
	flags := rootCommand.PersistentFlags()
	log.AddFlags(flags)
	flags.Bool("debug", false, "use debug log mode")
	flags.StringP("config", "c", "", "configuration file path")
	flags.String("data-dir", "", "root directory of data sets")
	rootCommand.Flags().BoolP("version", "v", false, "mldata version")

	fetchCommand.Flags().String("name", "", "name of the data set family")
	fetchCommand.Flags().String("url", "", "url of the data asset")
	fetchCommand.Flags().String("decompress", "", "file expected after decompressing the asset")
	base.Must(fetchCommand.MarkFlagRequired("name"))
	base.Must(fetchCommand.MarkFlagRequired("url"))

	irisCommand.Flags().String("url", iris.DefaultURL, "url of the iris data")
	irisCommand.Flags().String("decompress", iris.DefaultDecompressFile, "data file inside the archive, empty for a plain file")
	irisCommand.Flags().Int64("seed", 0, "seed of the split shuffle")
	irisCommand.Flags().Float64("train", 0.6, "fraction of samples in the train set")
	irisCommand.Flags().Float64("valid", 0.2, "fraction of samples in the valid set")
	irisCommand.Flags().Bool("no-standardize", false, "keep raw features")
	irisCommand.Flags().StringSlice("set", nil, "sets to show (train, valid, test), all by default")
	irisCommand.Flags().Int("preview", 0, "number of random samples to print from every set")

	rootCommand.AddCommand(fetchCommand, irisCommand, versionCommand)
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		log.Logger().Fatal("failed to execute", zap.Error(err))
	}
}
