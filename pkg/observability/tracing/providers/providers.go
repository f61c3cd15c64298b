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

// Package providers names the supported distributed tracing backends
package providers

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidProvider is an error for when a tracer is configured with an unknown provider
var ErrInvalidProvider = errors.New("invalid tracing provider")

// Provider is the configured name of a distributed tracing backend
type Provider string

const (
	// None disables span export
	None Provider = "none"
	// Stdout writes spans as JSON to a writer, os.Stdout by default
	Stdout Provider = "stdout"
	// Jaeger exports spans to a Jaeger collector or agent
	Jaeger Provider = "jaeger"
	// Zipkin exports spans to a Zipkin collector
	Zipkin Provider = "zipkin"
)

var supported = []Provider{None, Stdout, Jaeger, Zipkin}

// Parse returns the Provider for name. Case and surrounding whitespace are
// ignored, and an empty name is None.
func Parse(name string) (Provider, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return None, nil
	}
	for _, p := range supported {
		if string(p) == name {
			return p, nil
		}
	}
	return None, fmt.Errorf("%w: %q (supported: %s)", ErrInvalidProvider,
		name, strings.Join(Supported(), ", "))
}

// Supported returns the names of all supported providers
func Supported() []string {
	out := make([]string, len(supported))
	for i, p := range supported {
		out[i] = string(p)
	}
	return out
}

// TagsOnSpans is true for providers whose exporters drop resource
// attributes, so configured tags must be set on every span instead
func (p Provider) TagsOnSpans() bool {
	return p == Zipkin
}

func (p Provider) String() string {
	return string(p)
}
