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

// Package options configures the HTTP frontend that serves resolution and
// landing requests
package options

import (
	"fmt"
	"time"

	"github.com/hydraresolver/hydra/pkg/errors"
)

const (
	// DefaultListenPort is the default port that the HTTP frontend will listen on
	DefaultListenPort = 80
	// DefaultReadHeaderTimeout is the default time allowed to read request headers
	DefaultReadHeaderTimeout = 10 * time.Second
	// DefaultDrainTimeout is the default time allowed for in-flight requests at shutdown
	DefaultDrainTimeout = 5 * time.Second
)

// Options configures the frontend listener
type Options struct {
	// ListenAddress is the IP address to bind; empty binds all interfaces
	ListenAddress string `yaml:"listen_address,omitempty"`
	// ListenPort is the TCP port to bind
	ListenPort int `yaml:"listen_port,omitempty"`
	// ConnectionsLimit caps concurrent frontend connections. Zero is unlimited.
	ConnectionsLimit int `yaml:"connections_limit,omitempty"`
	// ReadHeaderTimeout is the amount of time allowed to read request headers
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout,omitempty"`
	// DrainTimeout is the amount of time in-flight requests are given to complete at shutdown
	DrainTimeout time.Duration `yaml:"drain_timeout,omitempty"`
}

// New returns a new Frontend Options with default values
func New() *Options {
	return &Options{
		ListenPort:        DefaultListenPort,
		ReadHeaderTimeout: DefaultReadHeaderTimeout,
		DrainTimeout:      DefaultDrainTimeout,
	}
}

// Clone returns a clone of the Options
func (o *Options) Clone() *Options {
	o2 := *o
	return &o2
}

// Validate returns an error wrapping errors.ErrInvalidOptions for a port
// outside 1-65535, or a negative limit or timeout
func (o *Options) Validate() error {
	switch {
	case o.ListenPort <= 0 || o.ListenPort > 65535:
		return fmt.Errorf("%w: frontend listen_port %d", errors.ErrInvalidOptions, o.ListenPort)
	case o.ConnectionsLimit < 0:
		return fmt.Errorf("%w: frontend connections_limit %d", errors.ErrInvalidOptions,
			o.ConnectionsLimit)
	case o.ReadHeaderTimeout < 0:
		return fmt.Errorf("%w: frontend read_header_timeout %s", errors.ErrInvalidOptions,
			o.ReadHeaderTimeout)
	case o.DrainTimeout < 0:
		return fmt.Errorf("%w: frontend drain_timeout %s", errors.ErrInvalidOptions,
			o.DrainTimeout)
	}
	return nil
}
