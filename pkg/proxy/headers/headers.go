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

// Package headers names the HTTP headers and values Hydra reads and writes,
// and resolves the client address of a request
package headers

const (
	// Common HTTP Header Values

	// ValueApplicationYAML represents the HTTP Header Value of "application/yaml"
	ValueApplicationYAML = "application/yaml"
	// ValueClose represents the HTTP Header Value of "close"
	ValueClose = "close"
	// ValueNoCache represents the HTTP Header Value of "no-cache"
	ValueNoCache = "no-cache"
	// ValueNoTransform represents the HTTP Header Value of "no-transform"
	ValueNoTransform = "no-transform"
	// ValueTextHTML represents the HTTP Header Value of "text/html"
	ValueTextHTML = "text/html"
	// ValueTextHTMLUTF8 represents the HTTP Header Value of "text/html; charset=utf-8"
	ValueTextHTMLUTF8 = "text/html; charset=utf-8"
	// ValueTextPlain represents the HTTP Header Value of "text/plain"
	ValueTextPlain = "text/plain"

	// Common HTTP Header Names

	// NameAcceptEncoding represents the HTTP Header Name of "Accept-Encoding"
	NameAcceptEncoding = "Accept-Encoding"
	// NameCacheControl represents the HTTP Header Name of "Cache-Control"
	NameCacheControl = "Cache-Control"
	// NameCFConnectingIP represents the HTTP Header Name of "CF-Connecting-IP"
	NameCFConnectingIP = "Cf-Connecting-Ip"
	// NameConnection represents the HTTP Header Name of "Connection"
	NameConnection = "Connection"
	// NameContentEncoding represents the HTTP Header Name of "Content-Encoding"
	NameContentEncoding = "Content-Encoding"
	// NameContentLength represents the HTTP Header Name of "Content-Length"
	NameContentLength = "Content-Length"
	// NameContentType represents the HTTP Header Name of "Content-Type"
	NameContentType = "Content-Type"
	// NameRequestID represents the HTTP Header Name of "X-Request-Id"
	NameRequestID = "X-Request-Id"
	// NameVary represents the HTTP Header Name of "Vary"
	NameVary = "Vary"
	// NameXForwardedFor represents the HTTP Header Name of "X-Forwarded-For"
	NameXForwardedFor = "X-Forwarded-For"
)
