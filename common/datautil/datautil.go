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

package datautil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gorse-io/mldata/base/log"
	"github.com/gorse-io/mldata/config"
	"github.com/juju/errors"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// AssetOptions locate a data asset.
type AssetOptions struct {
	// Name of the data set family, also the name of its directory.
	Name string
	// URL of the asset. The last path segment names the local file.
	URL string
	// DataDir overrides the data root of the resolver.
	DataDir string
	// DecompressFile is the file expected after decompressing the asset.
	DecompressFile string
}

// Resolver downloads and decompresses data assets under a data root.
type Resolver struct {
	client        *http.Client
	dataDir       string
	maxTries      uint
	progress      bool
	userAgent     string
	retryInterval time.Duration
}

func NewResolver(dataDir string, cfg config.DownloadConfig) *Resolver {
	return &Resolver{
		client:        &http.Client{Timeout: cfg.Timeout},
		dataDir:       dataDir,
		maxTries:      max(cfg.MaxTries, 1),
		progress:      cfg.Progress,
		userAgent:     cfg.UserAgent,
		retryInterval: backoff.DefaultInitialInterval,
	}
}

// GetDataPath resolves an asset with the default configuration.
func GetDataPath(ctx context.Context, opts AssetOptions) (string, error) {
	defaultConfig := config.Default()
	return NewResolver(defaultConfig.DataDir, defaultConfig.Download).GetDataPath(ctx, opts)
}

// GetDataPath makes sure {data_dir}/{name}/{basename(url)} exists, downloading
// it if needed, and returns its absolute path. If DecompressFile is set the
// asset is decompressed inside {data_dir}/{name} unless that file already
// exists, and the path of the decompressed file is returned. Repeated calls
// neither download nor decompress again.
func (r *Resolver) GetDataPath(ctx context.Context, opts AssetOptions) (string, error) {
	if opts.Name == "" {
		return "", errors.NotValidf("empty data set name")
	}
	if opts.URL == "" {
		return "", errors.NotValidf("empty url of %q", opts.Name)
	}
	fileName, err := fileNameFromURL(opts.URL)
	if err != nil {
		return "", errors.Trace(err)
	}
	dataDir := opts.DataDir
	if dataDir == "" {
		dataDir = r.dataDir
	}
	dataDir, err = filepath.Abs(dataDir)
	if err != nil {
		return "", errors.Trace(err)
	}
	dir := filepath.Join(dataDir, opts.Name)
	var decompressPath string
	if opts.DecompressFile != "" {
		if decompressPath, err = safeJoin(dir, opts.DecompressFile); err != nil {
			return "", errors.Trace(err)
		}
	}
	if err = os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", errors.Trace(err)
	}

	filePath := filepath.Join(dir, fileName)
	if _, err = os.Stat(filePath); os.IsNotExist(err) {
		if err = r.download(ctx, opts.URL, filePath); err != nil {
			return "", errors.Trace(err)
		}
	} else if err != nil {
		return "", errors.Trace(err)
	}

	if opts.DecompressFile == "" {
		return filePath, nil
	}
	if _, err = os.Stat(decompressPath); os.IsNotExist(err) {
		log.Logger().Info("decompress data asset",
			zap.String("source", filePath), zap.String("destination", dir))
		if err = Decompress(filePath, dir); err != nil {
			return "", errors.Trace(err)
		}
		if _, err = os.Stat(decompressPath); err != nil {
			return "", errors.NotFoundf("%s after decompressing %s", opts.DecompressFile, fileName)
		}
	} else if err != nil {
		return "", errors.Trace(err)
	}
	return decompressPath, nil
}

func fileNameFromURL(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", errors.NotValidf("url %q", rawURL)
	}
	name := path.Base(parsed.Path)
	if name == "." || name == "/" {
		return "", errors.NotValidf("url %q without file name", rawURL)
	}
	return name, nil
}

// download fetches src into dst through a temporary file in the same
// directory, so dst is either absent or complete.
func (r *Resolver) download(ctx context.Context, src, dst string) error {
	log.Logger().Info("download data asset",
		zap.String("source", log.RedactURL(src)), zap.String("destination", dst))
	expBackOff := backoff.NewExponentialBackOff()
	expBackOff.InitialInterval = r.retryInterval
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		err := r.fetch(ctx, src, dst)
		if err != nil {
			log.Logger().Warn("failed to download data asset",
				zap.String("source", log.RedactURL(src)), zap.Error(err))
		}
		return struct{}{}, err
	}, backoff.WithBackOff(expBackOff), backoff.WithMaxTries(r.maxTries))
	return err
}

func (r *Resolver) fetch(ctx context.Context, src, dst string) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return backoff.Permanent(errors.Trace(err))
	}
	if r.userAgent != "" {
		request.Header.Set("User-Agent", r.userAgent)
	}
	response, err := r.client.Do(request)
	if err != nil {
		return errors.Trace(err)
	}
	defer response.Body.Close()
	if response.StatusCode == http.StatusNotFound {
		return backoff.Permanent(errors.NotFoundf("%s", log.RedactURL(src)))
	} else if response.StatusCode >= 400 && response.StatusCode < 500 {
		return backoff.Permanent(errors.Errorf("download %s: %s", log.RedactURL(src), response.Status))
	} else if response.StatusCode != http.StatusOK {
		return errors.Errorf("download %s: %s", log.RedactURL(src), response.Status)
	}

	output, err := os.CreateTemp(filepath.Dir(dst), filepath.Base(dst)+".*.part")
	if err != nil {
		return backoff.Permanent(errors.Trace(err))
	}
	defer os.Remove(output.Name())
	var body io.Reader = response.Body
	if r.progress {
		pbReader := progressbar.NewReader(response.Body, progressbar.DefaultBytes(
			response.ContentLength,
			fmt.Sprintf("Downloading %s", filepath.Base(dst)),
		))
		body = &pbReader
	}
	if _, err = io.Copy(output, body); err != nil {
		output.Close()
		return errors.Trace(err)
	}
	if err = output.Close(); err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(os.Rename(output.Name(), dst))
}
