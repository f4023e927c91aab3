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
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gorse-io/mldata/base"
	"github.com/gorse-io/mldata/common/tensor"
	"github.com/gorse-io/mldata/dataset"
	"github.com/gorse-io/mldata/dataset/iris"
	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapes(t *testing.T) {
	composite, err := tensor.NewComposite(
		tensor.Member{Name: "image", Tensor: tensor.Zeros(2, 3, 4)},
		tensor.Member{Name: "label", Tensor: tensor.Zeros(2, 1)},
	)
	require.NoError(t, err)
	assert.Equal(t, "[2 3 4] [2 1]", shapes(composite))
	assert.Equal(t, "[5 4]", shapes(tensor.Zeros(5, 4)))
}

func TestFetchCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("1,2,3\n"))
	}))
	defer server.Close()
	dataDir := t.TempDir()
	t.Setenv("MLDATA_DOWNLOAD_PROGRESS", "false")
	rootCommand.SetArgs([]string{"fetch", "--data-dir", dataDir, "--name", "numbers", "--url", server.URL + "/numbers.csv"})
	require.NoError(t, rootCommand.Execute())
	assert.FileExists(t, filepath.Join(dataDir, "numbers", "numbers.csv"))
	assert.Equal(t, dataDir, conf.DataDir)
}

func newIrisSource(t *testing.T) *dataset.DataSource {
	features := [][]float32{
		{5.1, 3.5, 1.4, 0.2}, {4.9, 3.0, 1.4, 0.2}, {7.0, 3.2, 4.7, 1.4},
		{6.4, 3.2, 4.5, 1.5}, {6.3, 3.3, 6.0, 2.5}, {5.8, 2.7, 5.1, 1.9},
	}
	labels := []int{0, 0, 1, 1, 2, 2}
	opts := iris.DefaultOptions()
	opts.TrainFraction, opts.ValidFraction = 0.5, 0
	opts.Standardize = false
	source, err := iris.NewDataSource(features, labels, opts)
	require.NoError(t, err)
	return source
}

func TestSelectSets(t *testing.T) {
	source := newIrisSource(t)
	sets, err := selectSets(source, nil)
	require.NoError(t, err)
	assert.Len(t, sets, 2)

	sets, err = selectSets(source, []string{"test"})
	require.NoError(t, err)
	assert.Len(t, sets, 1)
	assert.Same(t, source.TestSet(), sets[0])

	_, err = selectSets(source, []string{"validation"})
	assert.True(t, errors.Is(err, errors.NotFound), err)
	_, err = selectSets(source, []string{"holdout"})
	assert.True(t, errors.Is(err, errors.NotValid), err)
}

func TestRenderPreview(t *testing.T) {
	source := newIrisSource(t)
	var buf bytes.Buffer
	require.NoError(t, renderPreview(&buf, source, []*dataset.DataSet{source.TrainSet()}, base.NewRandomGenerator(0), 3))
	output := buf.String()
	assert.Contains(t, output, "train")
	assert.Regexp(t, "Iris-(setosa|versicolor|virginica)", output)

	buf.Reset()
	require.NoError(t, renderSets(&buf, source.Sets()))
	assert.Contains(t, buf.String(), "[3 4]")
	assert.Contains(t, buf.String(), "[3 3]")
}

func TestClassName(t *testing.T) {
	source := newIrisSource(t)
	targets := tensor.NewTensor([]float32{0, 0, 1, 0, 1, 0}, 2, 3)
	assert.Equal(t, "Iris-virginica", className(source, targets, 0))
	assert.Equal(t, "Iris-versicolor", className(source, targets, 1))
	assert.Equal(t, "-", className(source, tensor.Zeros(1, 2), 0))
}
