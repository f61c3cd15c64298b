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

// Package options provides the configuration of the lookup table source
package options

import (
	"errors"
	"unicode/utf8"
)

const (
	// DefaultSourcePath is the default path to the delimited GUID record source
	DefaultSourcePath = "guids.csv"
	// DefaultDelimiter is the default field delimiter of the record source
	DefaultDelimiter = ","
	// DefaultHasHeader indicates the first record of the source is a header row by default
	DefaultHasHeader = true
	// DefaultGUIDColumn is the default 0-based column holding the GUID
	DefaultGUIDColumn = 1
	// DefaultURLColumn is the default 0-based column holding the URL
	DefaultURLColumn = 2
)

// ErrInvalidDelimiter is an error for a delimiter that is not exactly one character
var ErrInvalidDelimiter = errors.New("lookup delimiter must be a single character")

// ErrInvalidColumns is an error for negative or colliding guid and url columns
var ErrInvalidColumns = errors.New("lookup guid_column and url_column must be distinct and non-negative")

// ErrMissingSourcePath is an error for an empty lookup source path
var ErrMissingSourcePath = errors.New("missing lookup source_path")

// Options describes where and how the lookup table is loaded from
type Options struct {
	// SourcePath is the path to the record source. Files ending in .gz,
	// .zst or .sz are decompressed while loading
	SourcePath string `yaml:"source_path,omitempty"`
	// Delimiter is the single-character field delimiter
	Delimiter string `yaml:"delimiter,omitempty"`
	// HasHeader indicates the first record is a header row and is skipped
	HasHeader bool `yaml:"has_header"`
	// GUIDColumn is the 0-based column index of the GUID field
	GUIDColumn int `yaml:"guid_column"`
	// URLColumn is the 0-based column index of the URL field
	URLColumn int `yaml:"url_column"`
}

// New returns a new Options with default values
func New() *Options {
	return &Options{
		SourcePath: DefaultSourcePath,
		Delimiter:  DefaultDelimiter,
		HasHeader:  DefaultHasHeader,
		GUIDColumn: DefaultGUIDColumn,
		URLColumn:  DefaultURLColumn,
	}
}

// Clone returns an exact copy of the Options
func (o *Options) Clone() *Options {
	o2 := *o
	return &o2
}

// Comma returns the Delimiter as a rune
func (o *Options) Comma() rune {
	r, _ := utf8.DecodeRuneInString(o.Delimiter)
	return r
}

// Validate returns an error if the Options cannot be used to load a table
func (o *Options) Validate() error {
	if o.SourcePath == "" {
		return ErrMissingSourcePath
	}
	if utf8.RuneCountInString(o.Delimiter) != 1 {
		return ErrInvalidDelimiter
	}
	if o.GUIDColumn < 0 || o.URLColumn < 0 || o.GUIDColumn == o.URLColumn {
		return ErrInvalidColumns
	}
	return nil
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
