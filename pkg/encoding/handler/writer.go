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

package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/hydraresolver/hydra/pkg/encoding"
	"github.com/hydraresolver/hydra/pkg/proxy/headers"
)

// responseEncoder decides whether to compress once the wrapped handler has
// set its headers, at the first WriteHeader or Write
type responseEncoder struct {
	http.ResponseWriter
	codec         *encoding.Codec
	compressTypes map[string]struct{}
	level         int

	prepared bool
	encoder  io.WriteCloser
}

func newResponseEncoder(w http.ResponseWriter, c *encoding.Codec,
	compressTypes map[string]struct{}) *responseEncoder {
	return &responseEncoder{ResponseWriter: w, codec: c, compressTypes: compressTypes, level: -1}
}

func (ew *responseEncoder) Write(b []byte) (int, error) {
	if !ew.prepared {
		ew.prepare(http.StatusOK)
	}
	if ew.encoder == nil {
		return ew.ResponseWriter.Write(b)
	}
	if _, err := ew.encoder.Write(b); err != nil {
		return 0, err
	}
	return len(b), nil
}

func (ew *responseEncoder) WriteHeader(code int) {
	if !ew.prepared {
		ew.prepare(code)
	}
	ew.ResponseWriter.WriteHeader(code)
}

func (ew *responseEncoder) prepare(code int) {
	ew.prepared = true
	h := ew.Header()
	if h.Get(headers.NameContentEncoding) != "" || !bodyAllowed(code) ||
		!ew.compressible(h.Get(headers.NameContentType)) {
		return
	}
	ew.encoder = ew.codec.NewWriter(ew.ResponseWriter, ew.level)
	h.Del(headers.NameContentLength)
	h.Set(headers.NameContentEncoding, ew.codec.Name)
	addVary(h, headers.NameAcceptEncoding)
}

func (ew *responseEncoder) compressible(contentType string) bool {
	if contentType == "" {
		return false
	}
	// 'text/plain; charset=utf-8' is matched as 'text/plain'
	ct, _, _ := strings.Cut(contentType, ";")
	_, ok := ew.compressTypes[strings.TrimSpace(ct)]
	return ok
}

// Close flushes and closes the encoder, if any
func (ew *responseEncoder) Close() error {
	if ew.encoder == nil {
		return nil
	}
	return ew.encoder.Close()
}

func bodyAllowed(code int) bool {
	return code >= http.StatusOK && code != http.StatusNoContent &&
		code != http.StatusNotModified
}

func addVary(h http.Header, name string) {
	for _, v := range h.Values(headers.NameVary) {
		for _, existing := range strings.Split(v, ",") {
			if strings.EqualFold(strings.TrimSpace(existing), name) {
				return
			}
		}
	}
	h.Add(headers.NameVary, name)
}
