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

	"github.com/hydraresolver/hydra/pkg/observability/tracing"
	tspan "github.com/hydraresolver/hydra/pkg/observability/tracing/span"
	"github.com/hydraresolver/hydra/pkg/proxy/headers"
	"github.com/hydraresolver/hydra/pkg/proxy/request"

	"go.opentelemetry.io/otel/attribute"
)

// Trace attaches a Tracer to an HTTP request
func Trace(tr *tracing.Tracer, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		r, span := tspan.PrepareRequest(r, tr, "request")
		if span != nil {
			defer span.End()

			attrs := []attribute.KeyValue{
				attribute.String("http.method", r.Method),
				attribute.String("http.host", r.Host),
				attribute.String("http.path", r.URL.Path),
			}
			if id := r.Header.Get(headers.NameRequestID); id != "" {
				attrs = append(attrs, attribute.String("request.id", id))
			}
			if rsc := request.GetResources(r); rsc != nil && rsc.Resolver != nil {
				attrs = append(attrs,
					attribute.String("resolver.domain_suffix", rsc.Resolver.DomainSuffix))
			}
			tspan.SetAttributes(tr, span, attrs...)
		}
		next.ServeHTTP(w, r)
	})
}
