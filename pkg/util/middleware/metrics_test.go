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

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hydraresolver/hydra/pkg/observability/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestDecorate(t *testing.T) {
	tests := []struct {
		name   string
		h      http.HandlerFunc
		status string
		code   int
	}{
		{"explicit", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("guid not found: zzz"))
		}, "4xx", http.StatusNotFound},
		{"implicit", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("pong"))
		}, "2xx", http.StatusOK},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := "/" + test.name
			h := Decorate("test", path, test.h)
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "http://0"+path, nil)
			h.ServeHTTP(w, r)
			if w.Code != test.code {
				t.Errorf("expected %d got %d", test.code, w.Code)
			}
			c := testutil.ToFloat64(metrics.FrontendRequestStatus.WithLabelValues("test",
				http.MethodGet, path, test.status))
			if c != 1 {
				t.Errorf("expected %d got %f", 1, c)
			}
			b := testutil.ToFloat64(metrics.FrontendRequestWrittenBytes.WithLabelValues("test",
				http.MethodGet, path, test.status))
			if int(b) != w.Body.Len() {
				t.Errorf("expected %d got %f", w.Body.Len(), b)
			}
		})
	}
}

func TestStatusClass(t *testing.T) {
	tests := map[int]string{
		100: "1xx", 200: "2xx", 299: "2xx", 301: "3xx",
		400: "4xx", 404: "4xx", 500: "5xx", 600: "unknown",
	}
	for code, expected := range tests {
		if v := StatusClass(code); v != expected {
			t.Errorf("%d: expected %s got %s", code, expected, v)
		}
	}
}
