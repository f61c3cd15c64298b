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

// Package route provides the route table entries and path patterns used by
// Hydra's routers
package route

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/hydraresolver/hydra/pkg/errors"
	"github.com/hydraresolver/hydra/pkg/proxy/params"
)

// SegmentKind identifies how a pattern segment matches a path segment
type SegmentKind int

const (
	// Literal segments match a path segment exactly
	Literal SegmentKind = iota
	// Param segments (":name") match any non-empty path segment and bind it
	Param
	// CatchAll segments ("*name") match the remainder of the path and bind it
	CatchAll
)

// Segment is a single slash-delimited element of a Pattern
type Segment struct {
	Kind  SegmentKind
	Value string
}

// Pattern is a parsed route path pattern such as /objects/:id/*rest
type Pattern struct {
	Raw      string
	Segments []Segment
}

// ParsePattern parses a route path pattern. The pattern must begin with '/'.
// Parameter names must be non-empty and unique, and a catch-all segment may
// only appear last.
func ParsePattern(raw string) (*Pattern, error) {
	if raw == "" || raw[0] != '/' {
		return nil, fmt.Errorf("%w: %q", errors.ErrInvalidPath, raw)
	}
	parts := strings.Split(raw[1:], "/")
	p := &Pattern{Raw: raw, Segments: make([]Segment, len(parts))}
	names := make(map[string]struct{})
	for i, part := range parts {
		s := Segment{Kind: Literal, Value: part}
		if len(part) > 0 && (part[0] == ':' || part[0] == '*') {
			s.Value = part[1:]
			s.Kind = Param
			if part[0] == '*' {
				s.Kind = CatchAll
				if i != len(parts)-1 {
					return nil, fmt.Errorf("%w: catch-all must be last in %q",
						errors.ErrInvalidPath, raw)
				}
			}
			if s.Value == "" {
				return nil, fmt.Errorf("%w: unnamed parameter in %q",
					errors.ErrInvalidPath, raw)
			}
			if _, ok := names[s.Value]; ok {
				return nil, fmt.Errorf("%w: duplicate parameter %q in %q",
					errors.ErrInvalidPath, s.Value, raw)
			}
			names[s.Value] = struct{}{}
		}
		p.Segments[i] = s
	}
	return p, nil
}

// Match reports whether path structurally matches the Pattern, returning the
// bound parameters in pattern order
func (p *Pattern) Match(path string) (params.Params, bool) {
	if path == "" || path[0] != '/' {
		return nil, false
	}
	parts := strings.Split(path[1:], "/")
	n := len(p.Segments)
	catchAll := n > 0 && p.Segments[n-1].Kind == CatchAll
	if catchAll {
		if len(parts) < n-1 {
			return nil, false
		}
	} else if len(parts) != n {
		return nil, false
	}
	var out params.Params
	for i, s := range p.Segments {
		switch s.Kind {
		case Literal:
			if parts[i] != s.Value {
				return nil, false
			}
		case Param:
			if parts[i] == "" {
				return nil, false
			}
			out = append(out, params.Param{Key: s.Value, Value: parts[i]})
		case CatchAll:
			var rest string
			if i < len(parts) {
				rest = strings.Join(parts[i:], "/")
			}
			out = append(out, params.Param{Key: s.Value, Value: rest})
		}
	}
	return out, true
}

// Route is a single (method, host, pattern) entry in a route table
type Route struct {
	Method  string
	Host    string
	Pattern *Pattern
	Handler http.Handler
	// Implied is true for a HEAD route registered implicitly alongside GET
	Implied bool
}

// Routes is a list of Route entries in registration order
type Routes []*Route

// Find returns the index of the Route with the provided raw pattern, or -1
func (rs Routes) Find(raw string) int {
	for i, r := range rs {
		if r.Pattern.Raw == raw {
			return i
		}
	}
	return -1
}

// Match returns the first Route in registration order whose pattern matches
// path, along with the bound parameters
func (rs Routes) Match(path string) (*Route, params.Params) {
	for _, r := range rs {
		if p, ok := r.Pattern.Match(path); ok {
			return r, p
		}
	}
	return nil, nil
}

// Lookup is a map of Routes by HTTP method
type Lookup map[string]Routes

// Set appends r to the Routes for its method. When the pattern is already
// registered for that method, the existing entry is replaced in place and
// keeps its position in the ordering.
func (l Lookup) Set(r *Route) {
	rs := l[r.Method]
	if i := rs.Find(r.Pattern.Raw); i >= 0 {
		rs[i] = r
		return
	}
	l[r.Method] = append(rs, r)
}

// HostRouteSetLookup is a map of Lookups by host. The empty host holds the
// routes that apply to any host.
type HostRouteSetLookup map[string]Lookup
