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

package landing

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hydraresolver/hydra/pkg/encoding/handler"
	"github.com/hydraresolver/hydra/pkg/errors"
	"github.com/hydraresolver/hydra/pkg/observability/logging"
	"github.com/hydraresolver/hydra/pkg/observability/logging/level"
	"github.com/hydraresolver/hydra/pkg/observability/metrics"
	lo "github.com/hydraresolver/hydra/pkg/proxy/handlers/landing/options"
	"github.com/hydraresolver/hydra/pkg/proxy/request"

	"github.com/klauspost/compress/gzip"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

const testTemplate = `<html><body>hydra {{version}} / {{{version}}}</body></html>`

func writeTemplate(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "home.html")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func testResources(path string, buf *bytes.Buffer) *request.Resources {
	opts := lo.New()
	opts.TemplatePath = path
	l := logging.StreamLogger(buf, level.Info)
	l.SetLogAsynchronous(false)
	return request.NewResources(nil, "1.2.3", nil, opts, nil, l)
}

func newRequest(rsc *request.Resources, target string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	return request.WithContext(r, request.NewContext(r, nil, rsc))
}

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		tmpl     string
		version  string
		expected string
	}{
		{"double and triple stash", testTemplate, "1.2.3",
			`<html><body>hydra 1.2.3 / 1.2.3</body></html>`},
		{"comment", `{{!-- hydra landing --}}<p>{{version}}</p>`, "1.2.3", `<p>1.2.3</p>`},
		{"short comment", `{{! note }}<p>{{version}}</p>`, "1.2.3", `<p>1.2.3</p>`},
		{"escaped", `<p>{{version}}</p>`, "<b>", `<p>&lt;b&gt;</p>`},
		{"unescaped", `<p>{{{version}}}</p>`, "<b>", `<p><b></p>`},
		{"unknown field", `<p>{{missing}}</p>`, "1.2.3", `<p></p>`},
		{"if block", `{{#if version}}v{{version}}{{/if}}`, "1.2.3", `v1.2.3`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b, err := Render(writeTemplate(t, test.tmpl), test.version)
			if err != nil {
				t.Fatal(err)
			}
			if string(b) != test.expected {
				t.Errorf("expected %s got %s", test.expected, string(b))
			}
		})
	}
}

func TestRenderErrors(t *testing.T) {
	_, err := Render(filepath.Join(t.TempDir(), "missing.html"), "1.2.3")
	if err == nil {
		t.Fatal("expected error for missing template")
	}
	var f *errors.Fault
	if !errors.As(err, &f) || f.Severity != errors.SeverityRequest {
		t.Errorf("expected request fault, got %v", err)
	}
	if errors.IsProcessFatal(err) {
		t.Error("expected missing template to be request-scoped")
	}

	for _, tmpl := range []string{"{{ version ", "{{#if version}}open"} {
		_, err = Render(writeTemplate(t, tmpl), "1.2.3")
		if err == nil {
			t.Errorf("expected parse error for %q", tmpl)
			continue
		}
		if errors.IsProcessFatal(err) || !errors.As(err, &f) {
			t.Errorf("expected request fault, got %v", err)
		}
	}
}

func TestHandler(t *testing.T) {
	rsc := testResources(writeTemplate(t, testTemplate), &bytes.Buffer{})
	w := httptest.NewRecorder()
	Handler(w, newRequest(rsc, "http://example.org/"))
	if w.Code != http.StatusOK {
		t.Errorf("expected %d got %d", http.StatusOK, w.Code)
	}
	if !strings.Contains(w.Body.String(), "hydra 1.2.3 / 1.2.3") {
		t.Errorf("expected rendered version in %s", w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("unexpected content type %s", ct)
	}
}

func TestHandlerReadsTemplateEachRequest(t *testing.T) {
	path := writeTemplate(t, "first {{version}}")
	rsc := testResources(path, &bytes.Buffer{})
	w := httptest.NewRecorder()
	Handler(w, newRequest(rsc, "http://example.org/"))
	if w.Body.String() != "first 1.2.3" {
		t.Errorf("unexpected body %s", w.Body.String())
	}
	if err := os.WriteFile(path, []byte("second {{version}}"), 0600); err != nil {
		t.Fatal(err)
	}
	w = httptest.NewRecorder()
	Handler(w, newRequest(rsc, "http://example.org/"))
	if w.Body.String() != "second 1.2.3" {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}

func TestHandlerQueryParams(t *testing.T) {
	// the template is never read for parameter-bearing requests
	rsc := testResources(filepath.Join(t.TempDir(), "missing.html"), &bytes.Buffer{})
	w := httptest.NewRecorder()
	Handler(w, newRequest(rsc, "http://example.org/?guid=abc123"))
	if w.Code != http.StatusOK {
		t.Errorf("expected %d got %d", http.StatusOK, w.Code)
	}
	if w.Body.String() != SuccessBody {
		t.Errorf("expected %s got %s", SuccessBody, w.Body.String())
	}
}

func TestHandlerTemplateMissing(t *testing.T) {
	buf := &bytes.Buffer{}
	path := filepath.Join(t.TempDir(), "missing.html")
	rsc := testResources(path, buf)
	before := testutil.ToFloat64(metrics.LandingRenderFailures)
	w := httptest.NewRecorder()
	Handler(w, newRequest(rsc, "http://example.org/"))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected %d got %d", http.StatusInternalServerError, w.Code)
	}
	if w.Body.String() != "500 internal server error" {
		t.Errorf("unexpected body %s", w.Body.String())
	}
	if strings.Contains(w.Body.String(), "missing.html") {
		t.Error("expected file details to be withheld from the client")
	}
	if after := testutil.ToFloat64(metrics.LandingRenderFailures); after-before != 1 {
		t.Errorf("expected render failure counter to increment, got %f", after-before)
	}
	if !strings.Contains(buf.String(), "landing page render failed") {
		t.Errorf("expected error log, got %s", buf.String())
	}
}

func TestHandlerNoContext(t *testing.T) {
	w := httptest.NewRecorder()
	Handler(w, httptest.NewRequest(http.MethodGet, "http://example.org/", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected %d got %d", http.StatusInternalServerError, w.Code)
	}
}

func TestHandlerCompressed(t *testing.T) {
	content := testTemplate + strings.Repeat(" ", 512)
	rsc := testResources(writeTemplate(t, content), &bytes.Buffer{})
	h := handler.HandleCompression(http.HandlerFunc(Handler), rsc.Landing.CompressTypeLookup())

	r := newRequest(rsc, "http://example.org/")
	r.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected %d got %d", http.StatusOK, w.Code)
	}
	if ce := w.Header().Get("Content-Encoding"); ce != "gzip" {
		t.Fatalf("expected gzip content encoding got %s", ce)
	}
	gr, err := gzip.NewReader(w.Body)
	if err != nil {
		t.Fatal(err)
	}
	b, err := io.ReadAll(gr)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "hydra 1.2.3 / 1.2.3") {
		t.Errorf("unexpected decoded body %s", string(b))
	}
}
