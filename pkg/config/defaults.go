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

const (
	// DefaultConfigPath is the default location of the Hydra config file
	DefaultConfigPath = "/etc/hydra/hydra.yaml"
	// DefaultConfigHandlerPath is the default value for the Hydra Config Printout Handler path
	DefaultConfigHandlerPath = "/hydra/config"
	// DefaultPingHandlerPath is the default value for the Hydra Ping Handler path
	DefaultPingHandlerPath = "/hydra/ping"
	// DefaultLandingHandlerPath is the default value for the Hydra Landing Handler path
	DefaultLandingHandlerPath = "/hydra/landing"
)
