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
	"fmt"
	"strings"

	"github.com/hydraresolver/hydra/pkg/errors"
	"github.com/hydraresolver/hydra/pkg/observability/tracing/providers"
)

// Validate checks the Config for values that would prevent Hydra from serving,
// and finalizes derived values
func (c *Config) Validate() error {
	for _, v := range []interface{ Validate() error }{c.Frontend, c.Resolver,
		c.Lookup, c.Metrics, c.Logging} {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	if c.Landing.TemplatePath == "" {
		return fmt.Errorf("%w: missing landing template_path", errors.ErrInvalidOptions)
	}
	for _, p := range []string{c.Main.PingHandlerPath, c.Main.ConfigHandlerPath,
		c.Main.LandingHandlerPath} {
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("%w: %s", errors.ErrInvalidPath, p)
		}
	}
	c.Tracing.Name = "default"
	c.Tracing.Process()
	if _, err := providers.Parse(c.Tracing.Provider); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidOptions, err)
	}
	return nil
}
