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

// Package setup builds a ServerInstance from a Config: logging, tracing, the
// lookup table, routes and listeners
package setup

import (
	"context"
	"fmt"
	"os"
	goruntime "runtime"

	"github.com/hydraresolver/hydra/pkg/appinfo"
	"github.com/hydraresolver/hydra/pkg/config"
	"github.com/hydraresolver/hydra/pkg/daemon/instance"
	"github.com/hydraresolver/hydra/pkg/errors"
	"github.com/hydraresolver/hydra/pkg/lookup/loader"
	"github.com/hydraresolver/hydra/pkg/observability/logging"
	"github.com/hydraresolver/hydra/pkg/observability/logging/logger"
	tr "github.com/hydraresolver/hydra/pkg/observability/tracing/registration"
	"github.com/hydraresolver/hydra/pkg/proxy/request"
)

// LoadAndValidate loads the Config from the provided command line arguments,
// the config file they name, and the environment
func LoadAndValidate(args []string) (*config.Config, *config.Flags, error) {
	cfg, flags, err := config.Load(appinfo.Name, appinfo.Version, args)
	if err != nil {
		return nil, flags, err
	}
	if cfg == nil && (flags == nil || !flags.PrintVersion) {
		return nil, flags, errors.ErrInvalidOptions
	}
	return cfg, flags, nil
}

// ApplyConfig builds the ServerInstance's logger, tracer, lookup table and
// resources from newConf, then binds and starts its listeners. Any failure
// is returned before a listener accepts its first connection. errorFunc is
// called if a listener stops unexpectedly after startup.
func ApplyConfig(ctx context.Context, si *instance.ServerInstance, newConf *config.Config,
	errorFunc func(error)) error {

	if si == nil || newConf == nil {
		return errors.ErrInvalidOptions
	}

	if newConf.Main.ServerName == "" {
		newConf.Main.ServerName, _ = os.Hostname()
	}
	appinfo.SetServer(newConf.Main.ServerName)

	log := si.Logger
	if log == nil {
		log = initLogger(newConf)
	}
	for _, w := range newConf.LoaderWarnings {
		log.Warn(w, nil)
	}

	tracer, err := tr.GetTracer(newConf.Tracing, log, false)
	if err != nil {
		log.Error("tracing registration failed", logging.Pairs{"detail": err.Error()})
		return err
	}

	table, err := loader.LoadFile(ctx, newConf.Lookup, log)
	if err != nil {
		log.Error("lookup table load failed", logging.Pairs{"detail": err.Error()})
		return fmt.Errorf("lookup table load failed: %w", err)
	}

	rsc := request.NewResources(table, appinfo.Version, newConf.Resolver,
		newConf.Landing, tracer, log)

	fr, mr, err := RegisterRoutes(newConf, rsc)
	if err != nil {
		log.Error("route registration failed", logging.Pairs{"detail": err.Error()})
		return err
	}

	si.Config = newConf
	si.Resources = rsc
	si.Tracer = tracer
	si.Logger = log

	return applyListenerConfigs(si, fr, mr, errorFunc)
}

func initLogger(c *config.Config) logging.Logger {
	l := logging.New(c)
	logger.SetLogger(l)
	l.Info("application loaded from configuration",
		logging.Pairs{
			"name":      appinfo.Name,
			"server":    appinfo.Server,
			"version":   appinfo.Version,
			"goVersion": goruntime.Version(),
			"goArch":    goruntime.GOARCH,
			"goOS":      goruntime.GOOS,
			"commitID":  appinfo.GitCommitID,
			"buildTime": appinfo.BuildTime,
			"logLevel":  c.Logging.LogLevel,
			"config":    c.ConfigFilePath(),
			"pid":       os.Getpid(),
		},
	)
	return l
}
