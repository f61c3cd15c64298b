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

// Package middleware provides http.Handler decorators shared by the listeners
package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/hydraresolver/hydra/pkg/observability/metrics"
)

// Decorate wraps next so that each request it serves is counted, timed and
// measured in the frontend request metrics, labeled by handlerName, path and
// the class of the status code written
func Decorate(handlerName, path string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w}
		start := time.Now()
		next.ServeHTTP(rec, r)
		elapsed := time.Since(start).Seconds()

		labels := []string{handlerName, r.Method, path, StatusClass(rec.code)}
		metrics.FrontendRequestDuration.WithLabelValues(labels...).Observe(elapsed)
		metrics.FrontendRequestStatus.WithLabelValues(labels...).Inc()
		metrics.FrontendRequestWrittenBytes.WithLabelValues(labels...).Add(float64(rec.written))
	})
}

// statusRecorder remembers the first status code and counts body bytes
type statusRecorder struct {
	http.ResponseWriter
	code    int
	written int64
}

func (w *statusRecorder) WriteHeader(code int) {
	if w.code == 0 {
		w.code = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	if w.code == 0 {
		w.code = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.written += int64(n)
	return n, err
}

// StatusClass returns the "Nxx" class label for an HTTP status code, or
// "unknown" when code is outside 100-599
func StatusClass(code int) string {
	if code < 100 || code > 599 {
		return "unknown"
	}
	return strconv.Itoa(code/100) + "xx"
}
