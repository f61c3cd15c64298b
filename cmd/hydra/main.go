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

// Package main is the main package for the Hydra application
package main

import (
	"context"
	"os"

	"github.com/hydraresolver/hydra/pkg/appinfo"
	"github.com/hydraresolver/hydra/pkg/daemon"
	"github.com/hydraresolver/hydra/pkg/observability/logging"
	"github.com/hydraresolver/hydra/pkg/observability/logging/logger"
)

var (
	applicationGitCommitID string
	applicationBuildTime   string
)

const (
	applicationName    = "hydra"
	applicationVersion = "1.0.0"
)

func main() {
	appinfo.Set(applicationName, applicationVersion, applicationBuildTime,
		applicationGitCommitID)
	if err := daemon.Start(context.Background(), os.Args[1:]); err != nil {
		logger.Fatal(1, "hydra failed to start", logging.Pairs{"detail": err.Error()})
	}
}
