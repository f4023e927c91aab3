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
	"archive/tar"
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/juju/errors"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Decompress extracts src into dir. Archives (.zip, .tar, .tar.gz, .tgz,
// .tar.xz, .tar.zst) are unpacked; single compressed files (.gz, .xz, .zst)
// are written to dir without their last extension.
func Decompress(src, dir string) error {
	name := strings.ToLower(filepath.Base(src))
	switch {
	case strings.HasSuffix(name, ".zip"):
		return unzip(src, dir)
	case strings.HasSuffix(name, ".tar"):
		return untar(src, dir, nopReader)
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		return untar(src, dir, gzipReader)
	case strings.HasSuffix(name, ".tar.xz"):
		return untar(src, dir, xzReader)
	case strings.HasSuffix(name, ".tar.zst"):
		return untar(src, dir, zstdReader)
	case strings.HasSuffix(name, ".gz"):
		return uncompress(src, dir, gzipReader)
	case strings.HasSuffix(name, ".xz"):
		return uncompress(src, dir, xzReader)
	case strings.HasSuffix(name, ".zst"):
		return uncompress(src, dir, zstdReader)
	default:
		return errors.NotSupportedf("decompressing %s", filepath.Base(src))
	}
}

type readerFunc func(io.Reader) (io.ReadCloser, error)

func nopReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(r), nil
}

func gzipReader(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

func xzReader(r io.Reader) (io.ReadCloser, error) {
	reader, err := xz.NewReader(r)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(reader), nil
}

func zstdReader(r io.Reader) (io.ReadCloser, error) {
	decoder, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	return decoder.IOReadCloser(), nil
}

// safeJoin rejects entries escaping dst. More Info: http://bit.ly/2MsjAWE
func safeJoin(dst, name string) (string, error) {
	filePath := filepath.Join(dst, name)
	if !strings.HasPrefix(filePath, filepath.Clean(dst)+string(os.PathSeparator)) {
		return "", errors.NotValidf("illegal file path %s", filePath)
	}
	return filePath, nil
}

// writeFile copies r into filePath through a temporary file.
func writeFile(filePath string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(filePath), os.ModePerm); err != nil {
		return err
	}
	output, err := os.CreateTemp(filepath.Dir(filePath), filepath.Base(filePath)+".*.part")
	if err != nil {
		return err
	}
	defer os.Remove(output.Name())
	if _, err = io.Copy(output, r); err != nil {
		output.Close()
		return err
	}
	if err = output.Close(); err != nil {
		return err
	}
	if err = os.Chmod(output.Name(), mode); err != nil {
		return err
	}
	return os.Rename(output.Name(), filePath)
}

// unzip zip file.
func unzip(src, dst string) error {
	// Open zip file
	r, err := zip.OpenReader(src)
	if err != nil {
		return errors.Trace(err)
	}
	defer r.Close()
	// Extract files
	for _, f := range r.File {
		filePath, err := safeJoin(dst, f.Name)
		if err != nil {
			return errors.Trace(err)
		}
		if f.FileInfo().IsDir() {
			if err = os.MkdirAll(filePath, os.ModePerm); err != nil {
				return errors.Trace(err)
			}
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return errors.Trace(err)
		}
		err = writeFile(filePath, rc, f.Mode())
		// Close the file without defer to close before next iteration of loop
		rc.Close()
		if err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

func untar(src, dst string, open readerFunc) error {
	file, err := os.Open(src)
	if err != nil {
		return errors.Trace(err)
	}
	defer file.Close()
	reader, err := open(file)
	if err != nil {
		return errors.Annotatef(err, "open %s", filepath.Base(src))
	}
	defer reader.Close()
	tarReader := tar.NewReader(reader)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return errors.Trace(err)
		}
		filePath, err := safeJoin(dst, header.Name)
		if err != nil {
			return errors.Trace(err)
		}
		switch header.Typeflag {
		case tar.TypeDir:
			if err = os.MkdirAll(filePath, os.ModePerm); err != nil {
				return errors.Trace(err)
			}
		case tar.TypeReg:
			if err = writeFile(filePath, tarReader, header.FileInfo().Mode()); err != nil {
				return errors.Trace(err)
			}
		}
	}
}

func uncompress(src, dst string, open readerFunc) error {
	file, err := os.Open(src)
	if err != nil {
		return errors.Trace(err)
	}
	defer file.Close()
	reader, err := open(file)
	if err != nil {
		return errors.Annotatef(err, "open %s", filepath.Base(src))
	}
	defer reader.Close()
	base := filepath.Base(src)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return errors.Trace(writeFile(filepath.Join(dst, name), reader, 0644))
}
