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

// Package guid extracts and normalizes the GUID token carried in a request's
// subdomain
package guid

import (
	"net"
	"strings"
)

// Normalize returns the lookup key for a raw GUID token by removing every
// dash and double-quote character. Case is preserved.
func Normalize(token string) string {
	if strings.IndexAny(token, `-"`) < 0 {
		return token
	}
	return strings.Map(func(r rune) rune {
		if r == '-' || r == '"' {
			return -1
		}
		return r
	}, token)
}

// StripPort returns host without any trailing :port
func StripPort(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

// Extract returns the raw GUID token preceding suffix in host. The port, if
// any, is removed from host first. ok is false when host does not contain
// suffix.
func Extract(host, suffix string) (token string, ok bool) {
	if suffix == "" {
		return "", false
	}
	host = StripPort(host)
	i := strings.Index(host, suffix)
	if i < 0 {
		return "", false
	}
	return host[:i], true
}
