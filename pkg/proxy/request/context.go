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

// Package request provides the per-request Context handed to handlers and the
// Resources shared by all of them
package request

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	tctx "github.com/hydraresolver/hydra/pkg/proxy/context"
	"github.com/hydraresolver/hydra/pkg/proxy/headers"
	"github.com/hydraresolver/hydra/pkg/proxy/params"

	"github.com/google/uuid"
)

// Context is the per-request data the router hands to a handler: the request,
// the parameters bound from the matched route pattern, and the shared
// Resources. A Context is created fresh for each request and must not be
// shared across goroutines.
type Context struct {
	Request   *http.Request
	Params    params.Params
	Resources *Resources
	// ID identifies the request in logs. It is taken from an inbound
	// X-Request-Id header, or generated.
	ID string

	body     []byte
	bodyErr  error
	bodyRead bool
}

// NewContext returns a new Context for r
func NewContext(r *http.Request, p params.Params, rsc *Resources) *Context {
	rc := &Context{
		Request:   r,
		Params:    p,
		Resources: rsc,
	}
	if r != nil {
		rc.ID = r.Header.Get(headers.NameRequestID)
	}
	if rc.ID == "" {
		rc.ID = uuid.NewString()
	}
	return rc
}

// WithContext returns a shallow copy of r carrying rc, and points rc.Request
// at the returned request
func WithContext(r *http.Request, rc *Context) *http.Request {
	if r == nil || rc == nil {
		return r
	}
	ctx := tctx.WithRequestContext(r.Context(), rc)
	ctx = tctx.WithRequestID(ctx, rc.ID)
	r = r.WithContext(ctx)
	rc.Request = r
	return r
}

// GetContext returns the Context attached to r by the router, or nil
func GetContext(r *http.Request) *Context {
	if r == nil {
		return nil
	}
	rc, _ := tctx.RequestContext(r.Context()).(*Context)
	return rc
}

// Body returns the request body. The body is read at most once, on the first
// call; later calls return the same bytes and error. A body already recorded
// on the request's context.Context is used without reading r.Body.
func (rc *Context) Body() ([]byte, error) {
	if rc.bodyRead {
		return rc.body, rc.bodyErr
	}
	rc.bodyRead = true
	if rc.Request == nil {
		rc.body = []byte{}
		return rc.body, nil
	}
	if b := tctx.RequestBody(rc.Request.Context()); b != nil {
		rc.body = b
		return rc.body, nil
	}
	rc.body = []byte{}
	if rc.Request.Body != nil && rc.Request.Body != http.NoBody {
		rc.body, rc.bodyErr = io.ReadAll(rc.Request.Body)
		rc.Request.Body.Close()
		// leave the body readable for anything downstream of the handler
		rc.Request.Body = io.NopCloser(bytes.NewReader(rc.body))
	}
	if rc.bodyErr == nil {
		rc.Request = rc.Request.WithContext(tctx.WithRequestBody(rc.Request.Context(), rc.body))
	}
	return rc.body, rc.bodyErr
}

// BodyJSON decodes the request body as JSON into v
func (rc *Context) BodyJSON(v any) error {
	b, err := rc.Body()
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// ClientIP returns the client address of the request, honoring the
// resolver's configured client IP headers
func (rc *Context) ClientIP() string {
	var names []string
	if rc.Resources != nil && rc.Resources.Resolver != nil {
		names = rc.Resources.Resolver.ClientIPHeaders
	}
	return headers.ClientIP(rc.Request, names)
}
