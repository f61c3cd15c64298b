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

// Package methods validates and normalizes the HTTP methods a route is
// registered for
package methods

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/hydraresolver/hydra/pkg/errors"
)

var known = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodHead:    {},
	http.MethodPost:    {},
	http.MethodPut:     {},
	http.MethodPatch:   {},
	http.MethodDelete:  {},
	http.MethodOptions: {},
	http.MethodConnect: {},
	http.MethodTrace:   {},
}

// IsValid returns true if method, in any case, is a known HTTP method
func IsValid(method string) bool {
	_, ok := known[strings.ToUpper(method)]
	return ok
}

// Normalize returns the upper-cased, deduplicated list of methods a route
// should be registered for, in their original order. A nil or empty list
// means GET and HEAD. An unknown method returns an error wrapping
// errors.ErrInvalidMethod.
func Normalize(methods []string) ([]string, error) {
	if len(methods) == 0 {
		return []string{http.MethodGet, http.MethodHead}, nil
	}
	out := make([]string, 0, len(methods))
	seen := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		m = strings.ToUpper(strings.TrimSpace(m))
		if _, ok := known[m]; !ok {
			return nil, fmt.Errorf("%w: %q", errors.ErrInvalidMethod, m)
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out, nil
}
