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

// Package encoding provides the compression codecs used for compressed lookup
// sources and for negotiated response compression
package encoding

import (
	"io"
	"path/filepath"
	"strconv"
	"strings"
)

// Codec is a stream compression format
type Codec struct {
	// Name is the codec's Content-Encoding token
	Name string
	// Web is true when browsers can decode the codec. Other codecs are only
	// negotiated when a client names them explicitly.
	Web bool

	extensions []string
	newWriter  func(io.Writer, int) io.WriteCloser
	newReader  func(io.Reader) (io.ReadCloser, error)
}

// NewWriter returns an encoder writing to w. A level below 1 selects the
// codec's default level.
func (c *Codec) NewWriter(w io.Writer, level int) io.WriteCloser {
	return c.newWriter(w, level)
}

// NewReader returns a decoder reading from r. Codecs with a stream header
// read it immediately, so foreign input may fail here.
func (c *Codec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return c.newReader(r)
}

func (c *Codec) String() string {
	return c.Name
}

var (
	Zstandard = &Codec{Name: "zstd", Web: true, extensions: []string{".zst", ".zstd"},
		newWriter: zstdWriter, newReader: zstdReader}
	Brotli = &Codec{Name: "br", Web: true, extensions: []string{".br"},
		newWriter: brotliWriter, newReader: brotliReader}
	GZip = &Codec{Name: "gzip", Web: true, extensions: []string{".gz", ".gzip"},
		newWriter: gzipWriter, newReader: gzipReader}
	Deflate = &Codec{Name: "deflate", Web: true,
		newWriter: deflateWriter, newReader: deflateReader}
	Snappy = &Codec{Name: "snappy", extensions: []string{".sz"},
		newWriter: snappyWriter, newReader: snappyReader}
)

// codecs are listed in server preference order
var codecs = []*Codec{Zstandard, Brotli, GZip, Deflate, Snappy}

var aliases = map[string]*Codec{
	"zstandard": Zstandard,
	"brotli":    Brotli,
	"x-gzip":    GZip,
}

// Lookup returns the Codec named name, or nil
func Lookup(name string) *Codec {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, c := range codecs {
		if c.Name == name {
			return c
		}
	}
	return aliases[name]
}

// ForPath returns the Codec indicated by the file extension of path, or nil
// when the file is not compressed
func ForPath(path string) *Codec {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return nil
	}
	for _, c := range codecs {
		for _, e := range c.extensions {
			if e == ext {
				return c
			}
		}
	}
	return nil
}

// Negotiate returns the Codec the client's Accept-Encoding header value
// ranks highest, or nil when the response should not be encoded. Codecs of
// equal quality are chosen in server preference order. Tokens with a quality
// of zero are refused, and a wildcard applies its quality to every web codec
// the header does not name.
func Negotiate(acceptEncoding string) *Codec {
	if acceptEncoding == "" {
		return nil
	}
	quality := make(map[*Codec]float64, len(codecs))
	wildcard := -1.0
	for _, token := range strings.Split(acceptEncoding, ",") {
		name, q := parseToken(token)
		if name == "*" {
			wildcard = q
			continue
		}
		if c := Lookup(name); c != nil {
			quality[c] = q
		}
	}
	var best *Codec
	var bestQ float64
	for _, c := range codecs {
		q, named := quality[c]
		if !named {
			if !c.Web || wildcard < 0 {
				continue
			}
			q = wildcard
		}
		if q > bestQ {
			best, bestQ = c, q
		}
	}
	return best
}

func parseToken(token string) (string, float64) {
	name, params, _ := strings.Cut(token, ";")
	q := 1.0
	for _, p := range strings.Split(params, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(p), "=")
		if !ok || strings.TrimSpace(k) != "q" {
			continue
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			q = f
		}
	}
	return strings.ToLower(strings.TrimSpace(name)), q
}
