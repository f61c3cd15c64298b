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

// Package registration instantiates the configured tracer for use with handlers
package registration

import (
	"errors"
	"io"
	"net"
	"strings"
	"time"

	"github.com/hydraresolver/hydra/pkg/observability/logging"
	"github.com/hydraresolver/hydra/pkg/observability/tracing"
	"github.com/hydraresolver/hydra/pkg/observability/tracing/options"
	"github.com/hydraresolver/hydra/pkg/observability/tracing/providers"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	stdout "go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// ErrInvalidEndpointURL is an error for a collector address the provider cannot use
var ErrInvalidEndpointURL = errors.New("invalid endpoint url")

// GetTracer returns a *Tracer based on the provided options. A nil options
// or the "none" provider yields a noop Tracer.
func GetTracer(opts *options.Options, logger logging.Logger,
	isDryRun bool) (*tracing.Tracer, error) {
	if opts == nil {
		if logger != nil {
			logger.Info("nil tracing config, using noop tracer", nil)
		}
		return noopTracer(options.New()), nil
	}
	p, err := providers.Parse(opts.Provider)
	if err != nil {
		return nil, err
	}
	if !isDryRun && logger != nil && p != providers.None {
		logger.Info("tracer registration", logging.Pairs{
			"provider":    p.String(),
			"serviceName": opts.ServiceName,
			"collector":   opts.CollectorURL,
			"sampleRate":  opts.SampleRate,
			"tags":        tagsString(opts.Tags),
		})
	}
	switch p {
	case providers.Stdout:
		return NewStdoutTracer(opts, nil)
	case providers.Jaeger:
		exp, err := jaegerExporter(opts)
		if err != nil {
			return nil, err
		}
		return newTracer(opts, sdktrace.NewBatchSpanProcessor(exp), true), nil
	case providers.Zipkin:
		exp, err := zipkin.New(opts.CollectorURL)
		if err != nil {
			return nil, err
		}
		// tags are carried on each span, see span.PrepareRequest
		return newTracer(opts, sdktrace.NewBatchSpanProcessor(exp,
			sdktrace.WithBatchTimeout(5*time.Second),
			sdktrace.WithMaxExportBatchSize(10)), false), nil
	}
	return noopTracer(opts), nil
}

// NewStdoutTracer returns a Tracer that synchronously writes each finished
// span as JSON to w. A nil w writes to os.Stdout.
func NewStdoutTracer(opts *options.Options, w io.Writer) (*tracing.Tracer, error) {
	if opts == nil {
		opts = options.New()
		opts.Provider = providers.Stdout.String()
	}
	var so []stdout.Option
	if opts.StdOutOptions != nil && opts.StdOutOptions.PrettyPrint {
		so = append(so, stdout.WithPrettyPrint())
	}
	if w != nil {
		so = append(so, stdout.WithWriter(w))
	}
	exp, err := stdout.New(so...)
	if err != nil {
		return nil, err
	}
	return newTracer(opts, sdktrace.NewSimpleSpanProcessor(exp), true), nil
}

func newTracer(opts *options.Options, sp sdktrace.SpanProcessor,
	tagResource bool) *tracing.Tracer {
	attrs := []attribute.KeyValue{attribute.String("service.name", opts.ServiceName)}
	if tagResource {
		attrs = append(attrs, tracing.TagAttributes(opts.Tags)...)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sp),
		sdktrace.WithSampler(tracing.Sampler(opts.SampleRate)),
		sdktrace.WithResource(resource.NewWithAttributes("", attrs...)),
	)
	return &tracing.Tracer{
		Name:         opts.Name,
		Tracer:       tp.Tracer(opts.Name),
		Options:      opts,
		ShutdownFunc: tp.Shutdown,
	}
}

func noopTracer(opts *options.Options) *tracing.Tracer {
	return &tracing.Tracer{
		Name:    opts.Name,
		Tracer:  trace.NewNoopTracerProvider().Tracer(opts.Name),
		Options: opts,
	}
}

// jaegerExporter sends to an agent at host:port when the endpoint type is
// "agent", and to a collector URL otherwise
func jaegerExporter(opts *options.Options) (*jaeger.Exporter, error) {
	if opts.JaegerOptions != nil && opts.JaegerOptions.EndpointType == options.JaegerEndpointAgent {
		host, port, err := net.SplitHostPort(opts.CollectorURL)
		if err != nil || host == "" || port == "" {
			return nil, ErrInvalidEndpointURL
		}
		return jaeger.New(jaeger.WithAgentEndpoint(jaeger.WithAgentHost(host),
			jaeger.WithAgentPort(port)))
	}
	co := []jaeger.CollectorEndpointOption{jaeger.WithEndpoint(opts.CollectorURL)}
	if opts.CollectorUser != "" {
		co = append(co, jaeger.WithUsername(opts.CollectorUser))
	}
	if opts.CollectorPass != "" {
		co = append(co, jaeger.WithPassword(opts.CollectorPass))
	}
	return jaeger.New(jaeger.WithCollectorEndpoint(co...))
}

func tagsString(tags map[string]string) string {
	attrs := tracing.TagAttributes(tags)
	parts := make([]string, len(attrs))
	for i, kv := range attrs {
		parts[i] = string(kv.Key) + "=" + kv.Value.AsString()
	}
	return strings.Join(parts, ",")
}
