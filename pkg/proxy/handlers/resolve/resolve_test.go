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

package resolve

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hydraresolver/hydra/pkg/lookup"
	"github.com/hydraresolver/hydra/pkg/observability/logging"
	"github.com/hydraresolver/hydra/pkg/observability/logging/level"
	"github.com/hydraresolver/hydra/pkg/observability/metrics"
	"github.com/hydraresolver/hydra/pkg/observability/tracing/options"
	"github.com/hydraresolver/hydra/pkg/observability/tracing/registration"
	ro "github.com/hydraresolver/hydra/pkg/proxy/handlers/resolve/options"
	"github.com/hydraresolver/hydra/pkg/proxy/request"
	"github.com/hydraresolver/hydra/pkg/router/lm"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

const testSuffix = ".guid.example.org"

// fatalRecorder records Fatal calls instead of exiting the process
type fatalRecorder struct {
	logging.Logger
	mtx   sync.Mutex
	codes []int
}

func (l *fatalRecorder) Fatal(code int, event string, detail logging.Pairs) {
	l.mtx.Lock()
	l.codes = append(l.codes, code)
	l.mtx.Unlock()
	l.Logger.Fatal(-1, event, detail)
}

func testResources(t *testing.T, buf *bytes.Buffer) *request.Resources {
	t.Helper()
	tbl, err := lookup.New(map[string]string{"abc123": "https://example.com/a"})
	if err != nil {
		t.Fatal(err)
	}
	opts := ro.New()
	opts.DomainSuffix = testSuffix
	if err := opts.Validate(); err != nil {
		t.Fatal(err)
	}
	l := logging.StreamLogger(buf, level.Info)
	l.SetLogAsynchronous(false)
	return request.NewResources(tbl, "test", opts, nil, nil, l)
}

func newRequest(rsc *request.Resources, host string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "http://example.org/", nil)
	r.Host = host
	r.RemoteAddr = "10.0.0.1:5555"
	rc := request.NewContext(r, nil, rsc)
	return request.WithContext(r, rc)
}

func TestResolve(t *testing.T) {
	rsc := testResources(t, &bytes.Buffer{})
	tests := []struct {
		name    string
		host    string
		code    int
		body    string
		outcome string
		token   string
		key     string
	}{
		{"hit", "abc-123" + testSuffix, http.StatusOK, "https://example.com/a",
			OutcomeHit, "abc-123", "abc123"},
		{"hit with quotes", `"abc-1-23"` + testSuffix, http.StatusOK,
			"https://example.com/a", OutcomeHit, `"abc-1-23"`, "abc123"},
		{"hit with port", "abc123" + testSuffix + ":8080", http.StatusOK,
			"https://example.com/a", OutcomeHit, "abc123", "abc123"},
		{"miss", "zzz" + testSuffix, http.StatusNotFound, "guid not found: zzz",
			OutcomeMiss, "zzz", "zzz"},
		{"no case folding", "ABC123" + testSuffix, http.StatusNotFound,
			"guid not found: ABC123", OutcomeMiss, "ABC123", "ABC123"},
		{"missing host", "", http.StatusBadRequest, MissingHostBody,
			OutcomeMissingHost, "", ""},
		{"invalid host", "example.org", http.StatusBadRequest,
			"invalid host header: expected format is [guid].guid.example.org",
			OutcomeInvalidHost, "", ""},
		{"empty token", testSuffix, http.StatusNotFound, "guid not found: ",
			OutcomeMiss, "", ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			res := Resolve(rsc, test.host)
			if res.StatusCode != test.code {
				t.Errorf("expected %d got %d", test.code, res.StatusCode)
			}
			if res.Body != test.body {
				t.Errorf("expected %s got %s", test.body, res.Body)
			}
			if res.Outcome != test.outcome {
				t.Errorf("expected %s got %s", test.outcome, res.Outcome)
			}
			if res.Token != test.token {
				t.Errorf("expected %s got %s", test.token, res.Token)
			}
			if res.Key != test.key {
				t.Errorf("expected %s got %s", test.key, res.Key)
			}
		})
	}
}

func TestHandlerScenarios(t *testing.T) {
	buf := &bytes.Buffer{}
	rsc := testResources(t, buf)
	tests := []struct {
		host string
		code int
		body string
	}{
		{"abc-123.guid.example.org", http.StatusOK, "https://example.com/a"},
		{"zzz.guid.example.org", http.StatusNotFound, "guid not found: zzz"},
		{"", http.StatusBadRequest, "host header is required"},
		{"example.org", http.StatusBadRequest,
			"invalid host header: expected format is [guid].guid.example.org"},
	}
	for _, test := range tests {
		t.Run(test.host, func(t *testing.T) {
			before := testutil.ToFloat64(metrics.ResolverResolutions.WithLabelValues(
				Resolve(rsc, test.host).Outcome))
			w := httptest.NewRecorder()
			Handler(w, newRequest(rsc, test.host))
			if w.Code != test.code {
				t.Errorf("expected %d got %d", test.code, w.Code)
			}
			if w.Body.String() != test.body {
				t.Errorf("expected %s got %s", test.body, w.Body.String())
			}
			if ct := w.Header().Get("Content-Type"); ct != "text/plain" {
				t.Errorf("expected text/plain got %s", ct)
			}
			after := testutil.ToFloat64(metrics.ResolverResolutions.WithLabelValues(
				Resolve(rsc, test.host).Outcome))
			if after-before != 1 {
				t.Errorf("expected resolution counter to increment, got %f", after-before)
			}
		})
	}
	out := buf.String()
	for _, s := range []string{"event=resolve", "outcome=hit", "outcome=miss",
		"outcome=missing_host", "outcome=invalid_host", "clientIP=10.0.0.1",
		"guid=abc-123", "key=abc123"} {
		if !strings.Contains(out, s) {
			t.Errorf("expected log output to contain %s", s)
		}
	}
}

func TestHandlerClientIPAndRequestID(t *testing.T) {
	buf := &bytes.Buffer{}
	rsc := testResources(t, buf)
	r := httptest.NewRequest(http.MethodGet, "http://abc123.guid.example.org/", nil)
	r.Header.Set("CF-Connecting-IP", "203.0.113.7")
	r.Header.Set("X-Request-Id", "req-42")
	r = request.WithContext(r, request.NewContext(r, nil, rsc))
	w := httptest.NewRecorder()
	Handler(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("expected %d got %d", http.StatusOK, w.Code)
	}
	out := buf.String()
	if !strings.Contains(out, "clientIP=203.0.113.7") {
		t.Errorf("expected forwarded client ip in %s", out)
	}
	if !strings.Contains(out, "requestID=req-42") {
		t.Errorf("expected request id in %s", out)
	}
}

func TestHandlerNoContext(t *testing.T) {
	w := httptest.NewRecorder()
	Handler(w, httptest.NewRequest(http.MethodGet, "http://abc123.guid.example.org/", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected %d got %d", http.StatusInternalServerError, w.Code)
	}
	if w.Body.String() != "500 internal server error" {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}

func TestHandlerClockBeforeEpoch(t *testing.T) {
	buf := &bytes.Buffer{}
	rsc := testResources(t, buf)
	fr := &fatalRecorder{Logger: rsc.Logger}
	rsc.Logger = fr
	rsc.Now = func() time.Time { return time.Unix(-10, 0) }

	w := httptest.NewRecorder()
	Handler(w, newRequest(rsc, "abc123.guid.example.org"))
	if len(fr.codes) != 1 || fr.codes[0] != 1 {
		t.Fatalf("expected a single fatal with code 1, got %v", fr.codes)
	}
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected %d got %d", http.StatusInternalServerError, w.Code)
	}
	if strings.Contains(w.Body.String(), "epoch") {
		t.Error("expected internal error text to be withheld from the client")
	}
	out := buf.String()
	if !strings.Contains(out, "level=fatal") || !strings.Contains(out, "process fault") {
		t.Errorf("expected fatal log line, got %s", out)
	}
}

func TestHandlerSpan(t *testing.T) {
	rsc := testResources(t, &bytes.Buffer{})
	spans := &bytes.Buffer{}
	opts := options.New()
	opts.Provider = "stdout"
	tr, err := registration.NewStdoutTracer(opts, spans)
	if err != nil {
		t.Fatal(err)
	}
	rsc.Tracer = tr
	w := httptest.NewRecorder()
	Handler(w, newRequest(rsc, "abc123.guid.example.org"))
	tr.Shutdown(context.Background())
	out := spans.String()
	if !strings.Contains(out, `"Name":"resolve"`) {
		t.Errorf("expected resolve span, got %s", out)
	}
	if !strings.Contains(out, `"guid.key"`) || !strings.Contains(out, `"hit"`) {
		t.Errorf("expected span attributes, got %s", out)
	}
}

func TestHandlerViaRouter(t *testing.T) {
	rsc := testResources(t, &bytes.Buffer{})
	rt := lm.NewRouter()
	if err := rt.RegisterRoute("/", nil, nil, http.HandlerFunc(Handler)); err != nil {
		t.Fatal(err)
	}
	r := httptest.NewRequest(http.MethodGet, "http://abc-123.guid.example.org/", nil)
	r = request.SetResources(r, rsc)
	w := httptest.NewRecorder()
	rt.ServeHTTP(w, r)
	if w.Code != http.StatusOK || w.Body.String() != "https://example.com/a" {
		t.Errorf("unexpected response %d %s", w.Code, w.Body.String())
	}

	// HEAD is implied by GET
	r = httptest.NewRequest(http.MethodHead, "http://abc-123.guid.example.org/", nil)
	r = request.SetResources(r, rsc)
	w = httptest.NewRecorder()
	rt.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("expected %d got %d", http.StatusOK, w.Code)
	}
}

func TestHandlerConcurrent(t *testing.T) {
	rsc := testResources(t, &bytes.Buffer{})
	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			host, expected := "abc-123.guid.example.org", http.StatusOK
			if i%2 == 1 {
				host, expected = fmt.Sprintf("missing%d.guid.example.org", i), http.StatusNotFound
			}
			w := httptest.NewRecorder()
			Handler(w, newRequest(rsc, host))
			if w.Code != expected {
				errs <- fmt.Errorf("host %s: expected %d got %d", host, expected, w.Code)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
