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
	"net"
	"net/http"
	"strings"
)

// ClientIP returns the client address for the request. The first non-empty
// header from names wins; X-Forwarded-For style lists yield their first
// element. When no header is present, the host portion of r.RemoteAddr is
// returned, or RemoteAddr unchanged if it has no port.
func ClientIP(r *http.Request, names []string) string {
	if r == nil {
		return ""
	}
	for _, name := range names {
		v := strings.TrimSpace(r.Header.Get(name))
		if v == "" {
			continue
		}
		if i := strings.IndexByte(v, ','); i >= 0 {
			v = strings.TrimSpace(v[:i])
		}
		if v != "" {
			return v
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
