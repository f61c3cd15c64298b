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

package params

import (
	"net/http/httptest"
	"testing"
)

func TestParams(t *testing.T) {
	p := Params{{"guid", "abc"}, {"rest", "a/b"}, {"guid", "def"}}
	if v, ok := p.Get("guid"); !ok || v != "abc" {
		t.Errorf("expected %s got %s", "abc", v)
	}
	if _, ok := p.Get("missing"); ok {
		t.Error("expected missing param")
	}
	if v := p.ByName("rest"); v != "a/b" {
		t.Errorf("expected %s got %s", "a/b", v)
	}
	m := p.Map()
	if m["guid"] != "def" || len(m) != 2 {
		t.Errorf("unexpected map %v", m)
	}
	const expected = "guid=abc,rest=a/b,guid=def"
	if s := p.String(); s != expected {
		t.Errorf("expected %s got %s", expected, s)
	}
	var empty Params
	if empty.String() != "" || empty.ByName("x") != "" {
		t.Error("expected empty results")
	}
}

func TestQueryCount(t *testing.T) {
	tests := []struct {
		url      string
		expected int
	}{
		{"http://example.org/", 0},
		{"http://example.org/?", 0},
		{"http://example.org/?a", 1},
		{"http://example.org/?a=1&b=2", 2},
		{"http://example.org/?a=1&a=2", 1},
	}
	for _, test := range tests {
		r := httptest.NewRequest("GET", test.url, nil)
		if v := QueryCount(r); v != test.expected {
			t.Errorf("%s: expected %d got %d", test.url, test.expected, v)
		}
	}
	if QueryCount(nil) != 0 {
		t.Error("expected 0 for nil request")
	}
}
