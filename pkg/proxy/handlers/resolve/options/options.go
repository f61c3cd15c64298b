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

// Package options provides the configuration of the GUID resolution handler
package options

import (
	"net/http"
	"strings"

	"github.com/hydraresolver/hydra/pkg/errors"
)

// DefaultClientIPHeaders is the default list of headers trusted to carry the client address
var DefaultClientIPHeaders = []string{"CF-Connecting-IP"}

// Options is a collection of configurations for GUID resolution
type Options struct {
	// DomainSuffix is the host suffix following the GUID label, e.g. ".guid.example.org"
	DomainSuffix string `yaml:"domain_suffix,omitempty"`
	// ClientIPHeaders are checked in order for the originating client address
	ClientIPHeaders []string `yaml:"client_ip_headers,omitempty"`
	// LandingHosts are hosts whose root path serves the landing page instead of resolution
	LandingHosts []string `yaml:"landing_hosts,omitempty"`
}

// New returns a new Options with default values
func New() *Options {
	return &Options{
		ClientIPHeaders: append([]string(nil), DefaultClientIPHeaders...),
	}
}

// Clone returns an exact copy of the Options
func (o *Options) Clone() *Options {
	o2 := &Options{DomainSuffix: o.DomainSuffix}
	if o.ClientIPHeaders != nil {
		o2.ClientIPHeaders = append([]string(nil), o.ClientIPHeaders...)
	}
	if o.LandingHosts != nil {
		o2.LandingHosts = append([]string(nil), o.LandingHosts...)
	}
	return o2
}

// Validate returns an error if the Options are not usable
func (o *Options) Validate() error {
	if o.DomainSuffix == "" {
		return errors.ErrMissingDomainSuffix
	}
	if !strings.HasPrefix(o.DomainSuffix, ".") || len(o.DomainSuffix) < 2 {
		return errors.ErrInvalidDomainSuffix
	}
	for i, h := range o.ClientIPHeaders {
		o.ClientIPHeaders[i] = http.CanonicalHeaderKey(h)
	}
	return nil
}

// FormatHint returns the expected host format, e.g. "[guid].guid.example.org"
func (o *Options) FormatHint() string {
	return "[guid]." + strings.TrimPrefix(o.DomainSuffix, ".")
}

// UnmarshalYAML loads the Options on top of the default values
func (o *Options) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type loadOptions Options
	lo := loadOptions(*(New()))
	if err := unmarshal(&lo); err != nil {
		return err
	}
	*o = Options(lo)
	return nil
}
