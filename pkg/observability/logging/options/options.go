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

// Package options configures Hydra's logger
package options

import (
	"fmt"

	"github.com/hydraresolver/hydra/pkg/errors"
	"github.com/hydraresolver/hydra/pkg/observability/logging/level"
)

// DefaultLogLevel is the default log level
const DefaultLogLevel = "info"

// Options is a collection of Logging options
type Options struct {
	// LogFile is the path of a rotated log file. Empty logs to the console.
	LogFile string `yaml:"log_file,omitempty"`
	// LogLevel is the least severe level that is logged: debug, info, warn, error or fatal
	LogLevel string `yaml:"log_level,omitempty"`
}

// New returns a new Options with default values
func New() *Options {
	return &Options{LogLevel: DefaultLogLevel}
}

// Clone returns a clone of the Options
func (o *Options) Clone() *Options {
	o2 := *o
	return &o2
}

// Validate returns an error wrapping errors.ErrInvalidOptions for an
// unknown log level
func (o *Options) Validate() error {
	if level.GetID(level.Level(o.LogLevel)) == 0 {
		return fmt.Errorf("%w: log_level %s", errors.ErrInvalidOptions, o.LogLevel)
	}
	return nil
}
