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

// Package tracing provides distributed tracing services to Hydra
package tracing

import (
	"context"
	"net/http"
	"sort"

	"github.com/hydraresolver/hydra/pkg/observability/tracing/options"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the configured trace.Tracer along with the Options it was
// built from
type Tracer struct {
	trace.Tracer
	Name    string
	Options *options.Options
	// ShutdownFunc flushes and stops the exporter, when there is one
	ShutdownFunc func(context.Context) error
}

// Shutdown flushes and stops the Tracer's exporter, if it has one
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t == nil || t.ShutdownFunc == nil {
		return nil
	}
	return t.ShutdownFunc(ctx)
}

// HTTPToCode translates an HTTP status code into a span status code
func HTTPToCode(status int) codes.Code {
	if status < http.StatusBadRequest {
		return codes.Ok
	}
	return codes.Error
}

// Sampler returns the sdk Sampler for the provided sample rate
func Sampler(rate float64) sdktrace.Sampler {
	switch {
	case rate <= 0:
		return sdktrace.NeverSample()
	case rate >= 1:
		return sdktrace.AlwaysSample()
	}
	return sdktrace.TraceIDRatioBased(rate)
}

// TagAttributes returns tags as string attributes, sorted by key
func TagAttributes(tags map[string]string) []attribute.KeyValue {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	attrs := make([]attribute.KeyValue, len(keys))
	for i, k := range keys {
		attrs[i] = attribute.String(k, tags[k])
	}
	return attrs
}
