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

package errors

import "errors"

// ErrNilWriter is an error for a nil writer when a non-nil writer was expected
var ErrNilWriter = errors.New("nil writer")

// ErrInvalidOptions is an error for when a configuration is invalid
var ErrInvalidOptions = errors.New("invalid options")

// ErrInvalidPath is an error for when a route path is invalid
var ErrInvalidPath = errors.New("invalid path value in config")

// ErrInvalidMethod is an error for when a route method is invalid
var ErrInvalidMethod = errors.New("invalid method value in config")

// ErrNilHandler is an error for when a route is registered without a handler
var ErrNilHandler = errors.New("nil handler")

// ErrServerAlreadyStarted is an error for when the daemon is started twice
var ErrServerAlreadyStarted = errors.New("server already started")

// ErrMissingDomainSuffix is an error for when no resolver domain suffix is configured
var ErrMissingDomainSuffix = errors.New("missing resolver domain_suffix")

// ErrInvalidDomainSuffix is an error for when the domain suffix does not begin with a dot
var ErrInvalidDomainSuffix = errors.New("resolver domain_suffix must begin with '.'")

// ErrClockBeforeEpoch is an error for a system clock reporting a time before the Unix epoch
var ErrClockBeforeEpoch = errors.New("system time is before the unix epoch")

// ErrNilListener is an error for a listener group member without a net.Listener
var ErrNilListener = errors.New("nil listener")

// ErrNoSuchListener is an error for an unknown listener name
var ErrNoSuchListener = errors.New("no such listener")

// Is proxies the standard library errors.Is so callers need only one errors import
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As proxies the standard library errors.As
func As(err error, target any) bool {
	return errors.As(err, target)
}
