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

// Package landing provides the handler for the landing page served when a
// request carries no GUID subdomain
package landing

import (
	"io"
	"net/http"
	"os"

	"github.com/hydraresolver/hydra/pkg/errors"
	"github.com/hydraresolver/hydra/pkg/observability/logging"
	"github.com/hydraresolver/hydra/pkg/observability/logging/logger"
	"github.com/hydraresolver/hydra/pkg/observability/metrics"
	"github.com/hydraresolver/hydra/pkg/observability/tracing/span"
	"github.com/hydraresolver/hydra/pkg/proxy/handlers/hydra/failures"
	lo "github.com/hydraresolver/hydra/pkg/proxy/handlers/landing/options"
	"github.com/hydraresolver/hydra/pkg/proxy/headers"
	"github.com/hydraresolver/hydra/pkg/proxy/params"
	"github.com/hydraresolver/hydra/pkg/proxy/request"

	"github.com/aymerick/raymond"
	"go.opentelemetry.io/otel/codes"
)

// SuccessBody is the response body for landing requests carrying query parameters
const SuccessBody = "Success!"

// Render reads the Handlebars template at path and renders it with version
// bound to {{version}}
func Render(path, version string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewRequestFault(err)
	}
	out, err := raymond.Render(string(b), map[string]string{"version": version})
	if err != nil {
		return nil, errors.NewRequestFault(err)
	}
	return []byte(out), nil
}

// Handler is the http.HandlerFunc for the landing page
func Handler(w http.ResponseWriter, r *http.Request) {
	rc := request.GetContext(r)
	if rc == nil || rc.Resources == nil {
		failures.HandleInternalServerError(w, r)
		return
	}
	rsc := rc.Resources
	log := rsc.Logger
	if log == nil {
		log = logger.Logger()
	}

	if params.QueryCount(r) > 0 {
		w.Header().Set(headers.NameContentType, headers.ValueTextPlain)
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, SuccessBody)
		return
	}

	path := lo.DefaultTemplatePath
	if rsc.Landing != nil && rsc.Landing.TemplatePath != "" {
		path = rsc.Landing.TemplatePath
	}

	_, sp := span.NewChildSpan(r.Context(), rsc.Tracer, "landing")
	if sp != nil {
		defer sp.End()
	}

	b, err := Render(path, rsc.Version)
	if err != nil {
		metrics.LandingRenderFailures.Inc()
		if sp != nil {
			sp.SetStatus(codes.Error, "render failed")
		}
		log.Error("landing page render failed", logging.Pairs{
			"templatePath": path,
			"error":        err,
			"requestID":    rc.ID,
		})
		failures.HandleInternalServerError(w, r)
		return
	}

	log.Debug("landing page served", logging.Pairs{
		"clientIP":  rc.ClientIP(),
		"requestID": rc.ID,
	})

	w.Header().Set(headers.NameContentType, headers.ValueTextHTMLUTF8)
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
