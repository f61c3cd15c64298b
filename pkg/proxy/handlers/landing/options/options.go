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

// Package options provides the configuration of the landing page handler
package options

const (
	// DefaultTemplatePath is the default path to the landing page template
	DefaultTemplatePath = "home.html"
)

// DefaultCompressTypes lists the content types eligible for response compression
var DefaultCompressTypes = []string{"text/html", "text/plain"}

// Options is a collection of configurations for the landing page
type Options struct {
	// TemplatePath is the path of the template read on each landing request
	TemplatePath string `yaml:"template_path,omitempty"`
	// CompressTypes are the content types that may be compressed
	CompressTypes []string `yaml:"compress_types,omitempty"`
}

// New returns a new Options with default values
func New() *Options {
	return &Options{
		TemplatePath:  DefaultTemplatePath,
		CompressTypes: append([]string(nil), DefaultCompressTypes...),
	}
}

// Clone returns an exact copy of the Options
func (o *Options) Clone() *Options {
	o2 := &Options{TemplatePath: o.TemplatePath}
	if o.CompressTypes != nil {
		o2.CompressTypes = append([]string(nil), o.CompressTypes...)
	}
	return o2
}

// CompressTypeLookup returns CompressTypes as a set
func (o *Options) CompressTypeLookup() map[string]struct{} {
	m := make(map[string]struct{}, len(o.CompressTypes))
	for _, v := range o.CompressTypes {
		m[v] = struct{}{}
	}
	return m
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
