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

// Package options configures the metrics listener
package options

import (
	"fmt"

	"github.com/hydraresolver/hydra/pkg/errors"
)

// DefaultListenPort is the default port for the /metrics endpoint
const DefaultListenPort = 8481

// Options configures the listener that serves /metrics, the config handler,
// and optionally /debug/pprof
type Options struct {
	// ListenAddress is the IP address to bind; empty binds all interfaces
	ListenAddress string `yaml:"listen_address,omitempty"`
	// ListenPort is the TCP port to bind. Zero disables the metrics listener.
	ListenPort int `yaml:"listen_port,omitempty"`
	// Pprof registers the /debug/pprof routes on the metrics listener
	Pprof bool `yaml:"pprof,omitempty"`
}

// New returns a new Options with default values
func New() *Options {
	return &Options{ListenPort: DefaultListenPort}
}

// Clone returns an exact copy of the Options
func (o *Options) Clone() *Options {
	o2 := *o
	return &o2
}

// Enabled returns true when the metrics listener should be started
func (o *Options) Enabled() bool {
	return o != nil && o.ListenPort > 0
}

// Validate returns an error wrapping errors.ErrInvalidOptions for a port
// outside 0-65535
func (o *Options) Validate() error {
	if o.ListenPort < 0 || o.ListenPort > 65535 {
		return fmt.Errorf("%w: metrics listen_port %d", errors.ErrInvalidOptions, o.ListenPort)
	}
	return nil
}
