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

package setup

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hydraresolver/hydra/pkg/config"
	"github.com/hydraresolver/hydra/pkg/daemon/instance"
	"github.com/hydraresolver/hydra/pkg/observability/logging"
	"github.com/hydraresolver/hydra/pkg/observability/logging/level"
	"github.com/hydraresolver/hydra/pkg/observability/metrics"
	"github.com/hydraresolver/hydra/pkg/proxy/request"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

const testRecords = "id,guid,url\n1,abc-123,https://example.com/a\n"

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

// testConfig returns a Config serving from an ephemeral frontend port
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	conf := config.NewConfig()
	conf.Frontend.ListenAddress = "127.0.0.1"
	conf.Frontend.ListenPort = 0
	conf.Frontend.DrainTimeout = time.Second
	conf.Metrics.ListenAddress = "127.0.0.1"
	conf.Metrics.ListenPort = 0
	conf.Resolver.DomainSuffix = ".guid.example.org"
	conf.Lookup.SourcePath = filepath.Join(dir, "guids.csv")
	conf.Landing.TemplatePath = filepath.Join(dir, "home.html")
	if err := os.WriteFile(conf.Lookup.SourcePath, []byte(testRecords), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(conf.Landing.TemplatePath,
		[]byte("<p>hydra {{version}}</p>"), 0600); err != nil {
		t.Fatal(err)
	}
	return conf
}

func testInstance() (*instance.ServerInstance, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	l := logging.StreamLogger(buf, level.Info)
	l.SetLogAsynchronous(false)
	return &instance.ServerInstance{Logger: l}, buf
}

func get(t *testing.T, addr, host, path string) (int, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, "http://"+addr+path, nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Host = host
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(b)
}

func TestApplyConfig(t *testing.T) {
	conf := testConfig(t)
	conf.Resolver.LandingHosts = []string{"www.example.org"}
	conf.Metrics.ListenPort = freePort(t)
	si, buf := testInstance()
	if err := ApplyConfig(context.Background(), si, conf, nil); err != nil {
		t.Fatal(err)
	}
	defer si.Listeners.DrainAndCloseAll(time.Second)

	if si.Resources == nil || si.Resources.Table.Len() != 1 {
		t.Fatal("expected resources with a loaded table")
	}
	addr := si.Listeners.Get(FrontendListener).Addr().String()

	tests := []struct {
		host, path string
		code       int
		body       string
	}{
		{"abc-123.guid.example.org", "/", http.StatusOK, "https://example.com/a"},
		{"zzz.guid.example.org", "/", http.StatusNotFound, "guid not found: zzz"},
		{"example.org", "/", http.StatusBadRequest,
			"invalid host header: expected format is [guid].guid.example.org"},
		{"www.example.org", "/", http.StatusOK, "<p>hydra </p>"},
		{"abc-123.guid.example.org", "/hydra/landing", http.StatusOK, "<p>hydra </p>"},
		{"abc-123.guid.example.org", "/hydra/ping", http.StatusOK, "pong"},
		{"abc-123.guid.example.org", "/other", http.StatusNotFound, "404 page not found"},
	}
	for _, test := range tests {
		code, body := get(t, addr, test.host, test.path)
		if code != test.code {
			t.Errorf("%s%s: expected %d got %d", test.host, test.path, test.code, code)
		}
		if body != test.body {
			t.Errorf("%s%s: expected %s got %s", test.host, test.path, test.body, body)
		}
	}

	maddr := si.Listeners.Get(MetricsListener).Addr().String()
	code, body := get(t, maddr, "localhost", "/metrics")
	if code != http.StatusOK || !strings.Contains(body, "hydra_resolver_resolutions_total") {
		t.Errorf("unexpected metrics response %d", code)
	}
	code, body = get(t, maddr, "localhost", "/hydra/config")
	if code != http.StatusOK || !strings.Contains(body, ".guid.example.org") {
		t.Errorf("unexpected config response %d %s", code, body)
	}
	// pprof is disabled by default
	if code, _ = get(t, maddr, "localhost", "/debug/pprof/"); code != http.StatusNotFound {
		t.Errorf("expected %d got %d", http.StatusNotFound, code)
	}

	if !strings.Contains(buf.String(), "lookup table loaded") {
		t.Errorf("expected load log in %s", buf.String())
	}
}

func TestApplyConfigMissingSource(t *testing.T) {
	conf := testConfig(t)
	conf.Lookup.SourcePath = filepath.Join(t.TempDir(), "missing.csv")
	si, _ := testInstance()
	if err := ApplyConfig(context.Background(), si, conf, nil); err == nil {
		t.Fatal("expected error for missing lookup source")
	}
	if si.Listeners != nil {
		t.Error("expected no listeners when the table fails to load")
	}
}

func TestApplyConfigMalformedSource(t *testing.T) {
	conf := testConfig(t)
	if err := os.WriteFile(conf.Lookup.SourcePath,
		[]byte("id,guid,url\n1,abc\n"), 0600); err != nil {
		t.Fatal(err)
	}
	si, _ := testInstance()
	if err := ApplyConfig(context.Background(), si, conf, nil); err == nil {
		t.Fatal("expected error for malformed lookup source")
	}
}

func TestApplyConfigPortInUse(t *testing.T) {
	nl, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer nl.Close()
	conf := testConfig(t)
	conf.Frontend.ListenPort = nl.Addr().(*net.TCPAddr).Port
	si, _ := testInstance()
	if err := ApplyConfig(context.Background(), si, conf, nil); err == nil {
		t.Fatal("expected bind error")
	}
}

func TestApplyConfigNil(t *testing.T) {
	if err := ApplyConfig(context.Background(), nil, nil, nil); err == nil {
		t.Error("expected error for nil instance")
	}
}

func TestRegisterRoutesPprof(t *testing.T) {
	conf := testConfig(t)
	conf.Metrics.Pprof = true
	rsc := request.NewResources(nil, "test", conf.Resolver, conf.Landing, nil,
		logging.NoopLogger())
	_, mr, err := RegisterRoutes(conf, rsc)
	if err != nil {
		t.Fatal(err)
	}
	w := httptest.NewRecorder()
	mr.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "http://localhost/debug/pprof/", nil))
	if w.Code != http.StatusOK {
		t.Errorf("expected %d got %d", http.StatusOK, w.Code)
	}
}

func TestRegisterRoutesUnmatchedMetrics(t *testing.T) {
	conf := testConfig(t)
	rsc := request.NewResources(nil, "test", conf.Resolver, conf.Landing, nil,
		logging.NoopLogger())
	fr, _, err := RegisterRoutes(conf, rsc)
	if err != nil {
		t.Fatal(err)
	}
	c := metrics.FrontendRequestStatus.WithLabelValues("notfound", http.MethodPost, "", "4xx")
	before := testutil.ToFloat64(c)
	w := httptest.NewRecorder()
	fr.ServeHTTP(w, httptest.NewRequest(http.MethodPost,
		"http://abc-123.guid.example.org/", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected %d got %d", http.StatusNotFound, w.Code)
	}
	if after := testutil.ToFloat64(c); after-before != 1 {
		t.Errorf("expected unmatched request to be counted, got %f", after-before)
	}
}

func TestLoadAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hydra.yaml")
	yml := "resolver:\n  domain_suffix: .guid.example.org\n"
	if err := os.WriteFile(path, []byte(yml), 0600); err != nil {
		t.Fatal(err)
	}
	conf, flags, err := LoadAndValidate([]string{"-config", path, "-listen-port", "8080"})
	if err != nil {
		t.Fatal(err)
	}
	if flags == nil || conf.Frontend.ListenPort != 8080 {
		t.Error("expected flag override of listen port")
	}
	if conf.Resolver.DomainSuffix != ".guid.example.org" {
		t.Errorf("unexpected domain suffix %s", conf.Resolver.DomainSuffix)
	}

	if _, _, err := LoadAndValidate([]string{"-config",
		filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Error("expected error for missing custom config path")
	}
}
