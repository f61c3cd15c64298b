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

// Package ping provides the Hydra liveness handler
package ping

import (
	"io"
	"net/http"

	"github.com/hydraresolver/hydra/pkg/proxy/headers"
)

// HandlerFunc responds to an HTTP Request with 200 OK and "pong"
func HandlerFunc(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set(headers.NameContentType, headers.ValueTextPlain)
	w.Header().Set(headers.NameCacheControl, headers.ValueNoCache)
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "pong")
}
