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

// Package daemon runs the Hydra process as an HTTP Listener based on the
// provided configuration
package daemon

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hydraresolver/hydra/pkg/appinfo"
	"github.com/hydraresolver/hydra/pkg/config"
	"github.com/hydraresolver/hydra/pkg/daemon/instance"
	"github.com/hydraresolver/hydra/pkg/daemon/setup"
	"github.com/hydraresolver/hydra/pkg/daemon/signaling"
	"github.com/hydraresolver/hydra/pkg/errors"
	fropt "github.com/hydraresolver/hydra/pkg/frontend/options"
	"github.com/hydraresolver/hydra/pkg/observability/logging"
	"github.com/hydraresolver/hydra/pkg/observability/metrics"
)

var mtx sync.Mutex
var wasStarted bool

// Start loads the configuration from args and serves until ctx is done or a
// shutdown signal is received. It may only be called once per process.
func Start(ctx context.Context, args []string) error {
	mtx.Lock()
	defer mtx.Unlock()
	if wasStarted {
		return errors.ErrServerAlreadyStarted
	}

	metrics.SetBuildInfo(appinfo.Version, appinfo.GitCommitID)

	conf, flags, err := setup.LoadAndValidate(args)
	// if it's a -version command, print version and exit
	if flags != nil && flags.PrintVersion {
		appinfo.PrintVersion()
		return nil
	}
	if err != nil {
		return err
	}

	// if it's a -validate command, print validation result
	if flags != nil && flags.ValidateConfig {
		fmt.Println("Hydra configuration validation succeeded.")
		return nil
	}
	wasStarted = true

	return Run(ctx, &instance.ServerInstance{}, conf)
}

// Run applies conf to si and serves until ctx is done, a shutdown signal is
// received or a listener fails, then drains the listeners
func Run(ctx context.Context, si *instance.ServerInstance, conf *config.Config) error {
	errs := make(chan error, 1)
	errorFunc := func(err error) {
		select {
		case errs <- err:
		default:
		}
	}
	if err := setup.ApplyConfig(ctx, si, conf, errorFunc); err != nil {
		return err
	}

	si.Logger.Info("hydra ready", logging.Pairs{
		"entries":      si.Resources.Table.Len(),
		"domainSuffix": conf.Resolver.DomainSuffix,
	})

	err := signaling.Wait(ctx, si.Logger, errs)
	Shutdown(si)
	return err
}

// Shutdown drains the ServerInstance's listeners, flushes its tracer and
// closes its logger
func Shutdown(si *instance.ServerInstance) {
	if si == nil {
		return
	}
	drain := drainTimeout(si)
	if si.Listeners != nil {
		if err := si.Listeners.DrainAndCloseAll(drain); err != nil && si.Logger != nil {
			si.Logger.Warn("listener drain incomplete", logging.Pairs{"detail": err.Error()})
		}
	}
	if si.Tracer != nil {
		ctx := context.Background()
		if drain > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, drain)
			defer cancel()
		}
		if err := si.Tracer.Shutdown(ctx); err != nil && si.Logger != nil {
			si.Logger.Error("tracer shutdown failed", logging.Pairs{"detail": err.Error()})
		}
	}
	if si.Logger != nil {
		si.Logger.Info("hydra stopped", nil)
		si.Logger.Close()
	}
}

func drainTimeout(si *instance.ServerInstance) time.Duration {
	if si.Config == nil || si.Config.Frontend == nil {
		return fropt.DefaultDrainTimeout
	}
	return si.Config.Frontend.DrainTimeout
}
