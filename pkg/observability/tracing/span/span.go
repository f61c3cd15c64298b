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

// Package span starts and decorates the spans opened while serving a request
package span

import (
	"context"
	"net/http"

	"github.com/hydraresolver/hydra/pkg/observability/tracing"

	"go.opentelemetry.io/contrib/instrumentation/net/http/httptrace/otelhttptrace"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/baggage"
	"go.opentelemetry.io/otel/trace"
)

// PrepareRequest opens the root span for an inbound request. Any trace
// context and baggage propagated in the request headers is honoured, so the
// new span joins the caller's trace. The returned request carries the span in
// its context. With no usable tracer, r is returned unchanged with a nil span.
func PrepareRequest(r *http.Request, tr *tracing.Tracer,
	spanName string) (*http.Request, trace.Span) {
	if !usable(tr) {
		return r, nil
	}
	attrs, bag, remote := otelhttptrace.Extract(r.Context(), r)
	ctx := baggage.ContextWithBaggage(r.Context(), bag)
	ctx = trace.ContextWithRemoteSpanContext(ctx, remote)
	attrs = append(staticTags(tr), omit(tr, attrs)...)
	ctx, sp := tr.Start(ctx, spanName, trace.WithAttributes(attrs...))
	return r.WithContext(ctx), sp
}

// NewChildSpan opens spanName beneath whatever span ctx already holds
func NewChildSpan(ctx context.Context, tr *tracing.Tracer,
	spanName string) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !usable(tr) {
		return ctx, nil
	}
	var opts []trace.SpanStartOption
	if tags := staticTags(tr); len(tags) > 0 {
		opts = append(opts, trace.WithAttributes(tags...))
	}
	return tr.Start(ctx, spanName, opts...)
}

// SetAttributes adds kvs to sp, dropping any key the tracer is configured
// to omit. A nil tracer or span is a no-op.
func SetAttributes(tr *tracing.Tracer, sp trace.Span, kvs ...attribute.KeyValue) {
	if tr == nil || sp == nil || len(kvs) == 0 {
		return
	}
	sp.SetAttributes(omit(tr, kvs)...)
}

func usable(tr *tracing.Tracer) bool {
	return tr != nil && tr.Tracer != nil
}

// staticTags returns the configured tags when the provider cannot carry
// them as resource attributes
func staticTags(tr *tracing.Tracer) []attribute.KeyValue {
	if tr.Options == nil || !tr.Options.AttachTagsToSpan() {
		return nil
	}
	return tracing.TagAttributes(tr.Options.Tags)
}

func omit(tr *tracing.Tracer, kvs []attribute.KeyValue) []attribute.KeyValue {
	if tr.Options == nil || len(tr.Options.OmitTags) == 0 || len(kvs) == 0 {
		return kvs
	}
	out := kvs[:0:0]
	for _, kv := range kvs {
		if _, skip := tr.Options.OmitTags[string(kv.Key)]; !skip {
			out = append(out, kv)
		}
	}
	return out
}
