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
	"net/http"

	"github.com/hydraresolver/hydra/pkg/config"
	"github.com/hydraresolver/hydra/pkg/encoding/handler"
	"github.com/hydraresolver/hydra/pkg/observability/metrics"
	"github.com/hydraresolver/hydra/pkg/observability/pprof"
	ch "github.com/hydraresolver/hydra/pkg/proxy/handlers/hydra/config"
	"github.com/hydraresolver/hydra/pkg/proxy/handlers/hydra/ping"
	"github.com/hydraresolver/hydra/pkg/proxy/handlers/landing"
	"github.com/hydraresolver/hydra/pkg/proxy/handlers/resolve"
	"github.com/hydraresolver/hydra/pkg/proxy/request"
	"github.com/hydraresolver/hydra/pkg/router"
	"github.com/hydraresolver/hydra/pkg/router/lm"
	"github.com/hydraresolver/hydra/pkg/util/middleware"
)

var getAndHead = []string{http.MethodGet, http.MethodHead}

// RegisterRoutes returns the frontend and metrics routers for conf. The
// frontend router is wrapped so every request carries rsc and a trace span.
func RegisterRoutes(conf *config.Config, rsc *request.Resources) (http.Handler,
	router.Router, error) {

	r := lm.NewRouter()
	r.SetNotFoundHandler(middleware.Decorate("notfound", "",
		http.HandlerFunc(lm.NotFound)))

	landingHandler := middleware.Decorate("landing", conf.Main.LandingHandlerPath,
		handler.HandleCompression(http.HandlerFunc(landing.Handler),
			conf.Landing.CompressTypeLookup()))

	if err := r.RegisterRoute(conf.Main.LandingHandlerPath, nil, getAndHead,
		landingHandler); err != nil {
		return nil, nil, err
	}
	if err := r.RegisterRoute(conf.Main.PingHandlerPath, nil, getAndHead,
		middleware.Decorate("ping", conf.Main.PingHandlerPath,
			http.HandlerFunc(ping.HandlerFunc))); err != nil {
		return nil, nil, err
	}
	if err := r.RegisterRoute("/", nil, []string{http.MethodGet},
		middleware.Decorate("resolve", "/", http.HandlerFunc(resolve.Handler))); err != nil {
		return nil, nil, err
	}
	// host routes are matched before the global resolution route
	if len(conf.Resolver.LandingHosts) > 0 {
		if err := r.RegisterRoute("/", conf.Resolver.LandingHosts, []string{http.MethodGet},
			middleware.Decorate("landing", "/", handler.HandleCompression(
				http.HandlerFunc(landing.Handler),
				conf.Landing.CompressTypeLookup()))); err != nil {
			return nil, nil, err
		}
	}

	mr := lm.NewRouter()
	if err := mr.RegisterRoute("/metrics", nil, getAndHead, metrics.Handler()); err != nil {
		return nil, nil, err
	}
	if err := mr.RegisterRoute(conf.Main.ConfigHandlerPath, nil, getAndHead,
		ch.HandlerFunc(conf)); err != nil {
		return nil, nil, err
	}
	if conf.Metrics.Pprof {
		if err := pprof.RegisterRoutes("metrics", mr, rsc.Logger); err != nil {
			return nil, nil, err
		}
	}

	return middleware.WithResourcesContext(rsc, middleware.Trace(rsc.Tracer, r)), mr, nil
}
