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

// Package handler provides an HTTP handler that compresses responses according
// to the client's Accept-Encoding header
package handler

import (
	"net/http"
	"strings"

	"github.com/hydraresolver/hydra/pkg/encoding"
	"github.com/hydraresolver/hydra/pkg/proxy/headers"
)

// HandleCompression wraps next so that responses whose Content-Type is in
// compressTypes (e.g. {"text/html": {}}) are compressed with the codec
// negotiated from the request's Accept-Encoding header
func HandleCompression(next http.Handler, compressTypes map[string]struct{}) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get(headers.NameCacheControl), headers.ValueNoTransform) {
			next.ServeHTTP(w, r)
			return
		}
		codec := encoding.Negotiate(r.Header.Get(headers.NameAcceptEncoding))
		if codec == nil {
			next.ServeHTTP(w, r)
			return
		}
		ew := newResponseEncoder(w, codec, compressTypes)
		defer ew.Close()
		next.ServeHTTP(ew, r)
	})
}
