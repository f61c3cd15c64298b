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

package request

import (
	"net/http"
	"time"

	"github.com/hydraresolver/hydra/pkg/lookup"
	"github.com/hydraresolver/hydra/pkg/observability/logging"
	"github.com/hydraresolver/hydra/pkg/observability/tracing"
	tctx "github.com/hydraresolver/hydra/pkg/proxy/context"
	lo "github.com/hydraresolver/hydra/pkg/proxy/handlers/landing/options"
	ro "github.com/hydraresolver/hydra/pkg/proxy/handlers/resolve/options"
)

// Resources is the collection of process-wide, read-only resources a Hydra
// request needs to fulfill the client request. A single Resources is built at
// startup and stored in every client request's context.
type Resources struct {
	// Table is the GUID lookup table
	Table *lookup.Table
	// Version is the application version rendered into the landing page
	Version string
	// Resolver holds the resolution handler options
	Resolver *ro.Options
	// Landing holds the landing handler options
	Landing *lo.Options
	// Tracer is the request tracer
	Tracer *tracing.Tracer
	// Logger is the request logger
	Logger logging.Logger
	// Now returns the current time. When nil, time.Now is used.
	Now func() time.Time
}

// NewResources returns a new Resources collection based on the provided inputs
func NewResources(t *lookup.Table, version string, resolverOpts *ro.Options,
	landingOpts *lo.Options, tr *tracing.Tracer, logger logging.Logger,
) *Resources {
	return &Resources{
		Table:    t,
		Version:  version,
		Resolver: resolverOpts,
		Landing:  landingOpts,
		Tracer:   tr,
		Logger:   logger,
	}
}

// Clock returns the current time according to the Resources' clock
func (r *Resources) Clock() time.Time {
	if r == nil || r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

// Clone returns a shallow copy of the subject Resources collection. The
// lookup table and options are shared, since they are never mutated.
func (r *Resources) Clone() *Resources {
	if r == nil {
		return nil
	}
	r2 := *r
	return &r2
}

// GetResources will return a casted Resource object from the HTTP Request's context
func GetResources(r *http.Request) *Resources {
	if r == nil {
		return nil
	}
	v := tctx.Resources(r.Context())
	rsc, ok := v.(*Resources)
	if ok {
		return rsc
	}
	return nil
}

// SetResources will save the Resources collection to the HTTP Request's context
func SetResources(r *http.Request, rsc *Resources) *http.Request {
	if rsc == nil {
		return r
	}
	return r.WithContext(tctx.WithResources(r.Context(), rsc))
}
