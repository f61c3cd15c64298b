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

package headers

import (
	"net/http"
	"testing"
)

func TestClientIP(t *testing.T) {
	names := []string{NameCFConnectingIP, NameXForwardedFor}
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expected   string
	}{
		{"cf header", map[string]string{"CF-Connecting-IP": "203.0.113.7"},
			"10.0.0.1:5555", "203.0.113.7"},
		{"forwarded list", map[string]string{"X-Forwarded-For": "198.51.100.2, 10.0.0.9"},
			"10.0.0.1:5555", "198.51.100.2"},
		{"header precedence", map[string]string{"CF-Connecting-IP": "203.0.113.7",
			"X-Forwarded-For": "198.51.100.2"}, "10.0.0.1:5555", "203.0.113.7"},
		{"remote addr", nil, "10.0.0.1:5555", "10.0.0.1"},
		{"remote addr no port", nil, "10.0.0.1", "10.0.0.1"},
		{"blank header", map[string]string{"CF-Connecting-IP": "  "},
			"[::1]:80", "::1"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r, _ := http.NewRequest(http.MethodGet, "http://example.com/", nil)
			r.RemoteAddr = test.remoteAddr
			for k, v := range test.headers {
				r.Header.Set(k, v)
			}
			if v := ClientIP(r, names); v != test.expected {
				t.Errorf("expected %s got %s", test.expected, v)
			}
		})
	}
	if v := ClientIP(nil, names); v != "" {
		t.Errorf("expected empty string got %s", v)
	}
}
