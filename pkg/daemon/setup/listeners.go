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

	"github.com/hydraresolver/hydra/pkg/daemon/instance"
	"github.com/hydraresolver/hydra/pkg/observability/logging"
	"github.com/hydraresolver/hydra/pkg/proxy/listener"
)

// Listener names
const (
	FrontendListener = "frontend"
	MetricsListener  = "metrics"
)

func applyListenerConfigs(si *instance.ServerInstance, router, metricsRouter http.Handler,
	errorFunc func(error)) error {

	conf := si.Config
	if si.Listeners == nil {
		si.Listeners = listener.NewListenerGroup()
	}
	lg := si.Listeners

	// bind every listener before serving on any, so a port conflict aborts startup
	if _, err := lg.Listen(FrontendListener, conf.Frontend.ListenAddress,
		conf.Frontend.ListenPort, conf.Frontend.ConnectionsLimit,
		conf.Frontend.ReadHeaderTimeout, router, si.Logger); err != nil {
		return err
	}
	names := []string{FrontendListener}

	if conf.Metrics.Enabled() {
		if _, err := lg.Listen(MetricsListener, conf.Metrics.ListenAddress,
			conf.Metrics.ListenPort, 0, conf.Frontend.ReadHeaderTimeout,
			metricsRouter, si.Logger); err != nil {
			lg.DrainAndClose(FrontendListener, 0)
			return err
		}
		names = append(names, MetricsListener)
	} else {
		si.Logger.Info("metrics listener disabled", nil)
	}

	for _, name := range names {
		go func(name string) {
			if err := lg.Serve(name); err != nil {
				si.Logger.Error("listener failed", logging.Pairs{
					"listenerName": name, "detail": err.Error()})
				if errorFunc != nil {
					errorFunc(err)
				}
			}
		}(name)
	}
	return nil
}
