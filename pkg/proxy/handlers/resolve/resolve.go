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

// Package resolve provides the handler that resolves the GUID carried in a
// request's subdomain into the URL stored for it in the lookup table
package resolve

import (
	"io"
	"net/http"

	"github.com/hydraresolver/hydra/pkg/errors"
	"github.com/hydraresolver/hydra/pkg/guid"
	"github.com/hydraresolver/hydra/pkg/observability/logging"
	"github.com/hydraresolver/hydra/pkg/observability/logging/logger"
	"github.com/hydraresolver/hydra/pkg/observability/metrics"
	"github.com/hydraresolver/hydra/pkg/observability/tracing"
	"github.com/hydraresolver/hydra/pkg/observability/tracing/span"
	"github.com/hydraresolver/hydra/pkg/proxy/handlers/hydra/failures"
	"github.com/hydraresolver/hydra/pkg/proxy/headers"
	"github.com/hydraresolver/hydra/pkg/proxy/request"

	"go.opentelemetry.io/otel/attribute"
)

// Resolution outcomes, as used in logs, metrics and spans
const (
	OutcomeHit         = "hit"
	OutcomeMiss        = "miss"
	OutcomeMissingHost = "missing_host"
	OutcomeInvalidHost = "invalid_host"
)

// MissingHostBody is the response body for a request without a Host header
const MissingHostBody = "host header is required"

// Result describes the outcome of resolving a single host
type Result struct {
	// StatusCode is the HTTP status of the response
	StatusCode int
	// Body is the exact response body
	Body string
	// Outcome is one of the Outcome constants
	Outcome string
	// Token is the raw GUID token found in the host, if any
	Token string
	// Key is the normalized lookup key, if any
	Key string
}

// Resolve resolves host against the table and resolver options in rsc. It has
// no side effects.
func Resolve(rsc *request.Resources, host string) Result {
	if host == "" {
		return Result{
			StatusCode: http.StatusBadRequest,
			Body:       MissingHostBody,
			Outcome:    OutcomeMissingHost,
		}
	}
	token, ok := guid.Extract(host, rsc.Resolver.DomainSuffix)
	if !ok {
		return Result{
			StatusCode: http.StatusBadRequest,
			Body: "invalid host header: expected format is " +
				rsc.Resolver.FormatHint(),
			Outcome: OutcomeInvalidHost,
		}
	}
	key := guid.Normalize(token)
	if url, ok := rsc.Table.Get(key); ok {
		return Result{
			StatusCode: http.StatusOK,
			Body:       url,
			Outcome:    OutcomeHit,
			Token:      token,
			Key:        key,
		}
	}
	return Result{
		StatusCode: http.StatusNotFound,
		Body:       "guid not found: " + token,
		Outcome:    OutcomeMiss,
		Token:      token,
		Key:        key,
	}
}

// Handler is the http.HandlerFunc for GUID resolution. It expects the request
// context attached by the router.
func Handler(w http.ResponseWriter, r *http.Request) {
	rc := request.GetContext(r)
	if rc == nil || rc.Resources == nil || rc.Resources.Resolver == nil {
		failures.HandleInternalServerError(w, r)
		return
	}
	rsc := rc.Resources
	log := rsc.Logger
	if log == nil {
		log = logger.Logger()
	}

	now := rsc.Clock()
	if now.Unix() < 0 {
		err := errors.NewProcessFault(errors.ErrClockBeforeEpoch)
		log.Fatal(1, "system clock failure", logging.Pairs{
			"error": err, "clock": now, "requestID": rc.ID})
		// only reached when the logger's exit is suppressed
		failures.HandleInternalServerError(w, r)
		return
	}

	_, sp := span.NewChildSpan(r.Context(), rsc.Tracer, "resolve")

	res := Resolve(rsc, r.Host)

	if sp != nil {
		span.SetAttributes(rsc.Tracer, sp,
			attribute.String("guid.key", res.Key),
			attribute.String("resolve.outcome", res.Outcome),
		)
		sp.SetStatus(tracing.HTTPToCode(res.StatusCode), res.Outcome)
		sp.End()
	}
	metrics.ResolverResolutions.WithLabelValues(res.Outcome).Inc()

	log.Info("resolve", logging.Pairs{
		"ts":        now.Unix(),
		"clientIP":  rc.ClientIP(),
		"guid":      res.Token,
		"key":       res.Key,
		"outcome":   res.Outcome,
		"status":    res.StatusCode,
		"requestID": rc.ID,
	})

	if res.StatusCode != http.StatusOK {
		failures.HandleMiscFailure(res.StatusCode, res.Body, w)
		return
	}
	w.Header().Set(headers.NameContentType, headers.ValueTextPlain)
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, res.Body)
}
