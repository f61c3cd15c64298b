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

// package lm represents a simple List Match router. Routes are tried in
// registration order and the first structural match wins.
package lm

import (
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/hydraresolver/hydra/pkg/errors"
	"github.com/hydraresolver/hydra/pkg/proxy/headers"
	meth "github.com/hydraresolver/hydra/pkg/proxy/methods"
	"github.com/hydraresolver/hydra/pkg/proxy/params"
	"github.com/hydraresolver/hydra/pkg/proxy/request"
	"github.com/hydraresolver/hydra/pkg/router"
	"github.com/hydraresolver/hydra/pkg/router/route"
)

var _ router.Router = &lmRouter{}

type lmRouter struct {
	routes   route.HostRouteSetLookup
	notFound http.Handler
}

// NewRouter returns a new, empty List Match router. Registration is not safe
// for concurrent use; once serving begins the route table is read-only.
func NewRouter() router.Router {
	return &lmRouter{
		routes:   make(route.HostRouteSetLookup),
		notFound: notFoundHandler,
	}
}

// SetNotFoundHandler sets the handler for requests matching no route. A nil
// h restores the default 404 handler.
func (rt *lmRouter) SetNotFoundHandler(h http.Handler) {
	if h == nil {
		h = notFoundHandler
	}
	rt.notFound = h
}

var emptyHost = []string{""}

// NotFoundBody is the response body written for unmatched requests
const NotFoundBody = "404 page not found"

func (rt *lmRouter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.RequestURI == "*" {
		if r.ProtoAtLeast(1, 1) {
			w.Header().Set(headers.NameConnection, headers.ValueClose)
		}
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	rt.Handler(r).ServeHTTP(w, r)
}

func (rt *lmRouter) RegisterRoute(pattern string, hosts, methods []string,
	handler http.Handler) error {
	if handler == nil {
		return errors.ErrNilHandler
	}
	p, err := route.ParsePattern(pattern)
	if err != nil {
		return err
	}
	methods, err = meth.Normalize(methods)
	if err != nil {
		return err
	}
	if len(hosts) == 0 {
		hosts = emptyHost
	}
	for _, h := range hosts {
		h = normalizeHost(h)
		rl, ok := rt.routes[h]
		if !ok || rl == nil {
			rl = make(route.Lookup)
			rt.routes[h] = rl
		}
		var hasGet, hasHead bool
		for _, m := range methods {
			switch m {
			case http.MethodGet:
				hasGet = true
			case http.MethodHead:
				hasHead = true
			}
			rl.Set(&route.Route{Method: m, Host: h, Pattern: p, Handler: handler})
		}
		// GET implies HEAD, unless HEAD is explicitly registered for the pattern
		if hasGet && !hasHead {
			heads := rl[http.MethodHead]
			if i := heads.Find(p.Raw); i < 0 || heads[i].Implied {
				rl.Set(&route.Route{Method: http.MethodHead, Host: h, Pattern: p,
					Handler: handler, Implied: true})
			}
		}
	}
	return nil
}

func (rt *lmRouter) Route(method, host, path string) (http.Handler, params.Params) {
	if path == "" {
		path = "/"
	}
	method = strings.ToUpper(method)
	if host = normalizeHost(host); host != "" {
		if r, p := rt.routes[host][method].Match(path); r != nil {
			return r.Handler, p
		}
	}
	if r, p := rt.routes[""][method].Match(path); r != nil {
		return r.Handler, p
	}
	return rt.notFound, nil
}

func (rt *lmRouter) Handler(r *http.Request) http.Handler {
	var path string
	if r.URL != nil {
		path = r.URL.Path
	}
	h, p := rt.Route(r.Method, r.Host, path)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rc := request.NewContext(r, p, request.GetResources(r))
		h.ServeHTTP(w, request.WithContext(r, rc))
	})
}

// normalizeHost lower-cases the host and strips any port
func normalizeHost(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.ToLower(host)
}

// NotFound writes a 404 response with a fixed body
func NotFound(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set(headers.NameContentType, headers.ValueTextPlain)
	w.WriteHeader(http.StatusNotFound)
	io.WriteString(w, NotFoundBody)
}

var notFoundHandler = http.HandlerFunc(NotFound)
