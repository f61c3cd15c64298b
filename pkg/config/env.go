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

package config

import (
	"os"
	"strconv"
)

const (
	// Environment variables
	evListenPort   = "HYDRA_LISTEN_PORT"
	evMetricsPort  = "HYDRA_METRICS_PORT"
	evLogLevel     = "HYDRA_LOG_LEVEL"
	evDomainSuffix = "HYDRA_DOMAIN_SUFFIX"
	evLookupSource = "HYDRA_LOOKUP_SOURCE"
	evTemplatePath = "HYDRA_TEMPLATE_PATH"
)

func (c *Config) loadEnvVars() {
	// Frontend Port
	if x := os.Getenv(evListenPort); x != "" {
		if y, err := strconv.ParseInt(x, 10, 32); err == nil {
			c.Frontend.ListenPort = int(y)
		} else {
			c.LoaderWarnings = append(c.LoaderWarnings, "ignoring invalid "+evListenPort+": "+x)
		}
	}

	// Metrics Port
	if x := os.Getenv(evMetricsPort); x != "" {
		if y, err := strconv.ParseInt(x, 10, 32); err == nil {
			c.Metrics.ListenPort = int(y)
		} else {
			c.LoaderWarnings = append(c.LoaderWarnings, "ignoring invalid "+evMetricsPort+": "+x)
		}
	}

	// LogLevel
	if x := os.Getenv(evLogLevel); x != "" {
		c.Logging.LogLevel = x
	}

	if x := os.Getenv(evDomainSuffix); x != "" {
		c.Resolver.DomainSuffix = x
	}

	if x := os.Getenv(evLookupSource); x != "" {
		c.Lookup.SourcePath = x
	}

	if x := os.Getenv(evTemplatePath); x != "" {
		c.Landing.TemplatePath = x
	}
}
