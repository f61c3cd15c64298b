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

package options

import "github.com/hydraresolver/hydra/pkg/observability/tracing/providers"

// StdOutOptions configures the stdout exporter
type StdOutOptions struct {
	PrettyPrint bool `yaml:"pretty_print,omitempty"`
}

// JaegerEndpointAgent selects the Jaeger agent endpoint. Any other
// endpoint type selects the collector endpoint.
const JaegerEndpointAgent = "agent"

// JaegerOptions configures the jaeger exporter
type JaegerOptions struct {
	// EndpointType is "agent" or "collector" (the default)
	EndpointType string `yaml:"endpoint_type,omitempty"`
}

// Options is a Tracing Options collection
type Options struct {
	Name          string            `yaml:"-"`
	Provider      string            `yaml:"provider,omitempty"`
	ServiceName   string            `yaml:"service_name,omitempty"`
	CollectorURL  string            `yaml:"collector_url,omitempty"`
	CollectorUser string            `yaml:"collector_user,omitempty"`
	CollectorPass string            `yaml:"collector_pass,omitempty"`
	SampleRate    float64           `yaml:"sample_rate,omitempty"`
	Tags          map[string]string `yaml:"tags,omitempty"`
	OmitTagsList  []string          `yaml:"omit_tags,omitempty"`

	StdOutOptions *StdOutOptions `yaml:"stdout,omitempty"`
	JaegerOptions *JaegerOptions `yaml:"jaeger,omitempty"`

	OmitTags map[string]struct{} `yaml:"-"`
	// for tracers that don't support resource attributes (e.g., Zipkin)
	attachTagsToSpan bool
}

// New returns a new *Options with the default values
func New() *Options {
	return &Options{
		Provider:      DefaultTracerProvider,
		ServiceName:   DefaultTracerServiceName,
		SampleRate:    DefaultSampleRate,
		StdOutOptions: &StdOutOptions{},
		JaegerOptions: &JaegerOptions{},
	}
}

// Clone returns an exact copy of a tracing config
func (o *Options) Clone() *Options {
	var so *StdOutOptions
	if o.StdOutOptions != nil {
		c := *o.StdOutOptions
		so = &c
	}
	var jo *JaegerOptions
	if o.JaegerOptions != nil {
		c := *o.JaegerOptions
		jo = &c
	}
	o2 := &Options{
		Name:             o.Name,
		Provider:         o.Provider,
		ServiceName:      o.ServiceName,
		CollectorURL:     o.CollectorURL,
		CollectorUser:    o.CollectorUser,
		CollectorPass:    o.CollectorPass,
		SampleRate:       o.SampleRate,
		StdOutOptions:    so,
		JaegerOptions:    jo,
		attachTagsToSpan: o.attachTagsToSpan,
	}
	if o.Tags != nil {
		o2.Tags = make(map[string]string, len(o.Tags))
		for k, v := range o.Tags {
			o2.Tags[k] = v
		}
	}
	if o.OmitTagsList != nil {
		o2.OmitTagsList = append([]string(nil), o.OmitTagsList...)
	}
	if o.OmitTags != nil {
		o2.OmitTags = make(map[string]struct{}, len(o.OmitTags))
		for k := range o.OmitTags {
			o2.OmitTags[k] = struct{}{}
		}
	}
	return o2
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

// Process enriches the loaded Options with values derived from the configured ones
func (o *Options) Process() {
	if o.ServiceName == "" {
		o.ServiceName = DefaultTracerServiceName
	}
	if p, err := providers.Parse(o.Provider); err == nil {
		o.Provider = p.String()
	}
	if o.SampleRate < 0 {
		o.SampleRate = 0
	} else if o.SampleRate > 1 {
		o.SampleRate = 1
	}
	o.generateOmitTags()
	o.setAttachTags()
}

func (o *Options) generateOmitTags() {
	o.OmitTags = make(map[string]struct{}, len(o.OmitTagsList))
	for _, v := range o.OmitTagsList {
		o.OmitTags[v] = struct{}{}
	}
}

// AttachTagsToSpan indicates that Tags should be attached to the span
func (o *Options) AttachTagsToSpan() bool {
	return o.attachTagsToSpan
}

func (o *Options) setAttachTags() {
	o.attachTagsToSpan = providers.Provider(o.Provider).TagsOnSpans() && len(o.Tags) > 0
}
