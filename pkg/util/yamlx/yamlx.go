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

// Package yamlx provides helpers for inspecting the keys of a YAML document
package yamlx

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"gopkg.in/yaml.v2"
)

// KeyKind describes what a key in a KeyLookup holds
type KeyKind int

const (
	// Leaf keys hold a scalar or list value
	Leaf KeyKind = iota
	// Section keys hold a fixed set of child keys
	Section
	// Open keys hold arbitrary user-defined child keys, such as a map of tags
	Open
)

// KeyLookup is a lookup of fully-qualified, dot-delimited key names
type KeyLookup map[string]KeyKind

// GetKeyList parses a YAML document and returns its fully-qualified key names
func GetKeyList(yml []byte) (KeyLookup, error) {
	var doc yaml.MapSlice
	if err := yaml.Unmarshal(yml, &doc); err != nil {
		return nil, err
	}
	keys := make(KeyLookup)
	addMapSlice(keys, "", doc)
	return keys, nil
}

func addMapSlice(keys KeyLookup, prefix string, ms yaml.MapSlice) {
	for _, item := range ms {
		key := prefix + fmt.Sprint(item.Key)
		if child, ok := item.Value.(yaml.MapSlice); ok {
			keys[key] = Section
			addMapSlice(keys, key+".", child)
			continue
		}
		keys[key] = Leaf
	}
}

// IsDefined returns true if the key path is in the lookup
func (k KeyLookup) IsDefined(s ...string) bool {
	_, ok := k[strings.Join(s, ".")]
	return ok
}

// Unknown returns the sorted keys in k that are not defined by known. Keys
// nested under an Open key of known are always considered defined.
func (k KeyLookup) Unknown(known KeyLookup) []string {
	var out []string
	for key := range k {
		if _, ok := known[key]; ok {
			continue
		}
		if !known.underOpenKey(key) {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

func (k KeyLookup) underOpenKey(key string) bool {
	for i := strings.LastIndexByte(key, '.'); i > 0; i = strings.LastIndexByte(key, '.') {
		key = key[:i]
		if kind, ok := k[key]; ok {
			return kind == Open
		}
	}
	return false
}

// StructKeys returns the keys that v, a struct or pointer to a struct, accepts
// according to its yaml field tags
func StructKeys(v any) KeyLookup {
	keys := make(KeyLookup)
	addStruct(keys, "", reflect.TypeOf(v))
	return keys
}

func addStruct(keys KeyLookup, prefix string, t reflect.Type) {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		name := strings.Split(f.Tag.Get("yaml"), ",")[0]
		if name == "-" {
			continue
		}
		if name == "" {
			name = strings.ToLower(f.Name)
		}
		key := prefix + name
		ft := f.Type
		for ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		switch ft.Kind() {
		case reflect.Struct:
			keys[key] = Section
			addStruct(keys, key+".", ft)
		case reflect.Map:
			keys[key] = Open
		default:
			keys[key] = Leaf
		}
	}
}
