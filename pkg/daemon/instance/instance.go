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

// Package instance holds the state of a running Hydra server
package instance

import (
	"github.com/hydraresolver/hydra/pkg/config"
	"github.com/hydraresolver/hydra/pkg/observability/logging"
	"github.com/hydraresolver/hydra/pkg/observability/tracing"
	"github.com/hydraresolver/hydra/pkg/proxy/listener"
	"github.com/hydraresolver/hydra/pkg/proxy/request"
)

// ServerInstance is the collection of objects built from a Config and shared
// for the life of the process
type ServerInstance struct {
	Config    *config.Config
	Resources *request.Resources
	Listeners *listener.ListenerGroup
	Tracer    *tracing.Tracer
	Logger    logging.Logger
}
