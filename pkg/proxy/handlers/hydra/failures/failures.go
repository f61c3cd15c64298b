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

// Package failures provides the fixed-body error responses shared by Hydra's
// handlers. Internal error detail is never written to the client.
package failures

import (
	"io"
	"net/http"

	"github.com/hydraresolver/hydra/pkg/proxy/headers"
)

// InternalServerErrorBody is the generic body written for any 500 response
const InternalServerErrorBody = "500 internal server error"

// HandleBadRequestResponse responds to an HTTP Request with 400 Bad Request
// and the provided body
func HandleBadRequestResponse(w http.ResponseWriter, body string) {
	HandleMiscFailure(http.StatusBadRequest, body, w)
}

// HandleNotFound responds to an HTTP Request with 404 Not Found and the
// provided body
func HandleNotFound(w http.ResponseWriter, body string) {
	HandleMiscFailure(http.StatusNotFound, body, w)
}

// HandleInternalServerError responds to an HTTP Request with 500 Internal
// Server Error and a generic body
func HandleInternalServerError(w http.ResponseWriter, _ *http.Request) {
	HandleMiscFailure(http.StatusInternalServerError, InternalServerErrorBody, w)
}

// HandleMiscFailure responds to an HTTP Request with the provided status code
// and plain text body
func HandleMiscFailure(code int, body string, w http.ResponseWriter) {
	if w == nil {
		return
	}
	h := w.Header()
	h.Del(headers.NameContentEncoding)
	h.Set(headers.NameContentType, headers.ValueTextPlain)
	w.WriteHeader(code)
	if body != "" {
		io.WriteString(w, body)
	}
}
