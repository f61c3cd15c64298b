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

// Package router defines the interface for Hydra's request routers
package router

import (
	"net/http"

	"github.com/hydraresolver/hydra/pkg/proxy/params"
)

// Router dispatches requests to handlers by method, host and path
type Router interface {
	http.Handler
	// RegisterRoute registers a handler for the provided path pattern, hosts
	// and methods. A nil hosts list registers the route for any host, and a
	// nil methods list registers the route for GET and HEAD.
	RegisterRoute(pattern string, hosts, methods []string,
		handler http.Handler) error
	// Route returns the handler and bound path parameters for the provided
	// method, host and path. It always returns a non-nil handler.
	Route(method, host, path string) (http.Handler, params.Params)
	// SetNotFoundHandler sets the handler Route returns when nothing matches.
	// A nil handler restores the default 404 handler.
	SetNotFoundHandler(http.Handler)
	// Handler returns the handler matching the method/host/path in the
	// Request, wrapped so it receives a fresh request context
	Handler(*http.Request) http.Handler
}
