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

package tracing

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"go.opentelemetry.io/otel/codes"
)

func TestHTTPToCode(t *testing.T) {
	tests := []struct {
		status   int
		expected codes.Code
	}{
		{http.StatusOK, codes.Ok},
		{http.StatusFound, codes.Ok},
		{http.StatusBadRequest, codes.Error},
		{http.StatusNotFound, codes.Error},
		{http.StatusInternalServerError, codes.Error},
	}
	for _, test := range tests {
		if c := HTTPToCode(test.status); c != test.expected {
			t.Errorf("status %d: expected %v got %v", test.status, test.expected, c)
		}
	}
}

func TestSampler(t *testing.T) {
	if s := Sampler(-1).Description(); s != "AlwaysOffSampler" {
		t.Errorf("unexpected sampler %s", s)
	}
	if s := Sampler(1).Description(); s != "AlwaysOnSampler" {
		t.Errorf("unexpected sampler %s", s)
	}
	if s := Sampler(0.5).Description(); s == "AlwaysOnSampler" || s == "AlwaysOffSampler" {
		t.Errorf("unexpected sampler %s", s)
	}
}

func TestTagAttributes(t *testing.T) {
	attrs := TagAttributes(map[string]string{"region": "east", "env": "test"})
	if len(attrs) != 2 {
		t.Fatalf("expected %d got %d", 2, len(attrs))
	}
	if attrs[0].Key != "env" || attrs[1].Value.AsString() != "east" {
		t.Errorf("unexpected attributes %v", attrs)
	}
	if len(TagAttributes(nil)) != 0 {
		t.Error("expected no attributes")
	}
}

func TestShutdown(t *testing.T) {
	var tr *Tracer
	if err := tr.Shutdown(context.Background()); err != nil {
		t.Error(err)
	}
	errTest := errors.New("test")
	tr = &Tracer{ShutdownFunc: func(context.Context) error { return errTest }}
	if err := tr.Shutdown(context.Background()); err != errTest {
		t.Errorf("expected %v got %v", errTest, err)
	}
}
