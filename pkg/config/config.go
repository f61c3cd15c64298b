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

// Package config provides Hydra configuration abilities, including
// parsing and printing configuration files, command line parameters, and
// environment variables, as well as default values and state.
package config

import (
	"os"

	fropt "github.com/hydraresolver/hydra/pkg/frontend/options"
	lookup "github.com/hydraresolver/hydra/pkg/lookup/options"
	lo "github.com/hydraresolver/hydra/pkg/observability/logging/options"
	mo "github.com/hydraresolver/hydra/pkg/observability/metrics/options"
	tracing "github.com/hydraresolver/hydra/pkg/observability/tracing/options"
	landing "github.com/hydraresolver/hydra/pkg/proxy/handlers/landing/options"
	resolver "github.com/hydraresolver/hydra/pkg/proxy/handlers/resolve/options"
	"github.com/hydraresolver/hydra/pkg/util/yamlx"

	"gopkg.in/yaml.v2"
)

// Config is the main configuration object
type Config struct {
	// Main is the primary MainConfig section
	Main *MainConfig `yaml:"main,omitempty"`
	// Frontend provides configurations about the HTTP Front End
	Frontend *fropt.Options `yaml:"frontend,omitempty"`
	// Resolver provides configurations about GUID resolution
	Resolver *resolver.Options `yaml:"resolver,omitempty"`
	// Lookup provides configurations about the lookup table source
	Lookup *lookup.Options `yaml:"lookup,omitempty"`
	// Landing provides configurations about the landing page
	Landing *landing.Options `yaml:"landing,omitempty"`
	// Logging provides configurations that affect logging behavior
	Logging *lo.Options `yaml:"logging,omitempty"`
	// Metrics provides configurations for collecting Metrics about the application
	Metrics *mo.Options `yaml:"metrics,omitempty"`
	// Tracing provides the distributed tracing configuration
	Tracing *tracing.Options `yaml:"tracing,omitempty"`

	LoaderWarnings []string `yaml:"-"`
}

// MainConfig is a collection of general configuration values.
type MainConfig struct {
	// InstanceID represents a unique ID for the current instance, when multiple instances on the same host
	InstanceID int `yaml:"instance_id,omitempty"`
	// ServerName represents the server name reported in logs; defaults to os.Hostname
	ServerName string `yaml:"server_name,omitempty"`
	// ConfigHandlerPath provides the path to register the Config Handler for outputting the running configuration
	ConfigHandlerPath string `yaml:"config_handler_path,omitempty"`
	// PingHandlerPath provides the path to register the Ping Handler for checking that Hydra is running
	PingHandlerPath string `yaml:"ping_handler_path,omitempty"`
	// LandingHandlerPath provides the path to register the Landing Handler on every host
	LandingHandlerPath string `yaml:"landing_handler_path,omitempty"`

	configFilePath string
}

// NewConfig returns a Config initialized with default values.
func NewConfig() *Config {
	hn, _ := os.Hostname()
	return &Config{
		Main: &MainConfig{
			ServerName:         hn,
			ConfigHandlerPath:  DefaultConfigHandlerPath,
			PingHandlerPath:    DefaultPingHandlerPath,
			LandingHandlerPath: DefaultLandingHandlerPath,
		},
		Frontend:       fropt.New(),
		Resolver:       resolver.New(),
		Lookup:         lookup.New(),
		Landing:        landing.New(),
		Logging:        lo.New(),
		Metrics:        mo.New(),
		Tracing:        tracing.New(),
		LoaderWarnings: make([]string, 0),
	}
}

// loadFile loads application configuration from a YAML-formatted file.
func (c *Config) loadFile(flags *Flags) error {
	b, err := os.ReadFile(flags.ConfigPath)
	if err != nil {
		return err
	}
	if err = c.loadYAMLConfig(b); err != nil {
		return err
	}
	c.Main.configFilePath = flags.ConfigPath
	return nil
}

// loadYAMLConfig loads application configuration from a YAML-formatted byte slice.
func (c *Config) loadYAMLConfig(yml []byte) error {
	if err := yaml.Unmarshal(yml, c); err != nil {
		return err
	}
	if keys, err := yamlx.GetKeyList(yml); err == nil {
		for _, k := range keys.Unknown(yamlx.StructKeys(c)) {
			c.LoaderWarnings = append(c.LoaderWarnings, "unrecognized config key: "+k)
		}
	}
	c.setDefaults()
	return nil
}

// setDefaults restores any section that the loaded document explicitly nulled
func (c *Config) setDefaults() {
	if c.Main == nil {
		c.Main = NewConfig().Main
	}
	if c.Main.ConfigHandlerPath == "" {
		c.Main.ConfigHandlerPath = DefaultConfigHandlerPath
	}
	if c.Main.PingHandlerPath == "" {
		c.Main.PingHandlerPath = DefaultPingHandlerPath
	}
	if c.Main.LandingHandlerPath == "" {
		c.Main.LandingHandlerPath = DefaultLandingHandlerPath
	}
	if c.Frontend == nil {
		c.Frontend = fropt.New()
	}
	if c.Resolver == nil {
		c.Resolver = resolver.New()
	}
	if c.Lookup == nil {
		c.Lookup = lookup.New()
	}
	if c.Landing == nil {
		c.Landing = landing.New()
	}
	if c.Logging == nil {
		c.Logging = lo.New()
	}
	if c.Metrics == nil {
		c.Metrics = mo.New()
	}
	if c.Tracing == nil {
		c.Tracing = tracing.New()
	}
}

// Clone returns an exact copy of the subject *Config
func (c *Config) Clone() *Config {
	nc := &Config{
		Main:           &MainConfig{},
		Frontend:       c.Frontend.Clone(),
		Resolver:       c.Resolver.Clone(),
		Lookup:         c.Lookup.Clone(),
		Landing:        c.Landing.Clone(),
		Logging:        c.Logging.Clone(),
		Metrics:        c.Metrics.Clone(),
		Tracing:        c.Tracing.Clone(),
		LoaderWarnings: append([]string(nil), c.LoaderWarnings...),
	}
	*nc.Main = *c.Main
	return nc
}

func (c *Config) String() string {
	cp := c.Clone()

	// strip collector password
	if cp.Tracing.CollectorPass != "" {
		cp.Tracing.CollectorPass = "*****"
	}

	bytes, err := yaml.Marshal(cp)
	if err == nil {
		return string(bytes)
	}
	return ""
}

// ConfigFilePath returns the file path from which this configuration is based
func (c *Config) ConfigFilePath() string {
	if c.Main != nil {
		return c.Main.configFilePath
	}
	return ""
}
