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

// Package params provides support for handling route-bound path parameters
// and URL query parameters
package params

import (
	"net/http"
	"strings"
)

// Param is a single named path parameter bound by a route match
type Param struct {
	Key   string
	Value string
}

// Params is the ordered list of path parameters bound by a route match
type Params []Param

// Get returns the value of the first parameter named key, and whether it was found
func (p Params) Get(key string) (string, bool) {
	for _, v := range p {
		if v.Key == key {
			return v.Value, true
		}
	}
	return "", false
}

// ByName returns the value of the first parameter named key, or an empty string
func (p Params) ByName(key string) string {
	v, _ := p.Get(key)
	return v
}

// Map returns the Params as a map. Later duplicates overwrite earlier ones.
func (p Params) Map() map[string]string {
	m := make(map[string]string, len(p))
	for _, v := range p {
		m[v.Key] = v.Value
	}
	return m
}

func (p Params) String() string {
	if len(p) == 0 {
		return ""
	}
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = v.Key + "=" + v.Value
	}
	return strings.Join(parts, ",")
}

// QueryCount returns the number of distinct query parameter names in the request
func QueryCount(r *http.Request) int {
	if r == nil || r.URL == nil || r.URL.RawQuery == "" {
		return 0
	}
	return len(r.URL.Query())
}
