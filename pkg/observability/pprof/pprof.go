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

// Package pprof registers the runtime profiling endpoints on a router
package pprof

import (
	"net/http"
	"net/http/pprof"

	"github.com/hydraresolver/hydra/pkg/observability/logging"
	"github.com/hydraresolver/hydra/pkg/router"
)

// RegisterRoutes will register the Pprof Debugging endpoints to the provided router
func RegisterRoutes(routerName string, r router.Router, log logging.Logger) error {
	if log != nil {
		log.Info("registering pprof /debug routes", logging.Pairs{"routerName": routerName})
	}
	routes := []struct {
		path string
		h    http.HandlerFunc
	}{
		{"/debug/pprof/cmdline", pprof.Cmdline},
		{"/debug/pprof/profile", pprof.Profile},
		{"/debug/pprof/symbol", pprof.Symbol},
		{"/debug/pprof/trace", pprof.Trace},
		// named profiles such as heap and goroutine are served by Index
		{"/debug/pprof/*profile", pprof.Index},
	}
	for _, rt := range routes {
		if err := r.RegisterRoute(rt.path, nil, nil, rt.h); err != nil {
			return err
		}
	}
	return nil
}
