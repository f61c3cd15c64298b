/*
 * Copyright 2018 The Trickster Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package encoding

import (
	"io"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

func zstdWriter(w io.Writer, level int) io.WriteCloser {
	l := zstd.SpeedDefault
	if level > 0 {
		l = zstd.EncoderLevelFromZstd(level)
	}
	// only invalid options produce an error
	zw, _ := zstd.NewWriter(w, zstd.WithEncoderLevel(l))
	return zw
}

func zstdReader(r io.Reader) (io.ReadCloser, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	return zr.IOReadCloser(), nil
}

func brotliWriter(w io.Writer, level int) io.WriteCloser {
	if level < 1 || level > brotli.BestCompression {
		level = brotli.DefaultCompression
	}
	return brotli.NewWriterLevel(w, level)
}

func brotliReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(brotli.NewReader(r)), nil
}

func gzipWriter(w io.Writer, level int) io.WriteCloser {
	if level < 1 {
		level = gzip.DefaultCompression
	}
	gw, err := gzip.NewWriterLevel(w, level)
	if err != nil {
		gw = gzip.NewWriter(w)
	}
	return gw
}

func gzipReader(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

func deflateWriter(w io.Writer, level int) io.WriteCloser {
	if level < 1 {
		level = flate.DefaultCompression
	}
	fw, err := flate.NewWriter(w, level)
	if err != nil {
		fw, _ = flate.NewWriter(w, flate.DefaultCompression)
	}
	return fw
}

func deflateReader(r io.Reader) (io.ReadCloser, error) {
	return flate.NewReader(r), nil
}

// snappy streams use the framed format, which has no compression levels
func snappyWriter(w io.Writer, _ int) io.WriteCloser {
	return snappy.NewBufferedWriter(w)
}

func snappyReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(snappy.NewReader(r)), nil
}
