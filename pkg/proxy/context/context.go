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

// Package context provides the typed keys and accessors for the values
// Hydra attaches to a request's context.Context
package context

import "context"

type contextKey int

const (
	resourcesKey contextKey = iota
	requestBodyKey
	requestContextKey
	requestIDKey
)

func value[T any](ctx context.Context, key contextKey) (T, bool) {
	v, ok := ctx.Value(key).(T)
	return v, ok
}

// WithResources returns a copy of ctx carrying the shared resources r.
// A nil r leaves ctx unchanged.
func WithResources(ctx context.Context, r any) context.Context {
	if r == nil {
		return ctx
	}
	return context.WithValue(ctx, resourcesKey, r)
}

// Resources returns the shared resources carried by ctx, or nil
func Resources(ctx context.Context) any {
	return ctx.Value(resourcesKey)
}

// WithRequestContext returns a copy of ctx carrying the per-request context
// created by the router
func WithRequestContext(ctx context.Context, rc any) context.Context {
	return context.WithValue(ctx, requestContextKey, rc)
}

// RequestContext returns the per-request context carried by ctx, or nil
func RequestContext(ctx context.Context) any {
	return ctx.Value(requestContextKey)
}

// WithRequestID returns a copy of ctx carrying the request id
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the request id carried by ctx, or an empty string
func RequestID(ctx context.Context) string {
	id, _ := value[string](ctx, requestIDKey)
	return id
}

// WithRequestBody returns a copy of ctx carrying the fully read request body
func WithRequestBody(ctx context.Context, body []byte) context.Context {
	return context.WithValue(ctx, requestBodyKey, body)
}

// RequestBody returns the request body carried by ctx. It is nil when the
// body has not been read yet.
func RequestBody(ctx context.Context) []byte {
	b, _ := value[[]byte](ctx, requestBodyKey)
	return b
}
