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

// Package readers provides io.Readers that misbehave on purpose for use in
// Unit Tests
package readers

import (
	"errors"
	"io"
)

// ErrFailingReader is the default error returned by a FailingReader
var ErrFailingReader = errors.New("failing reader")

// FailingReader passes reads through to R until After bytes have been read,
// then returns Err on every subsequent read
type FailingReader struct {
	R     io.Reader
	After int
	Err   error

	read int
}

// NewFailingReader returns a FailingReader over r that fails after n bytes
func NewFailingReader(r io.Reader, n int) *FailingReader {
	return &FailingReader{R: r, After: n, Err: ErrFailingReader}
}

func (r *FailingReader) Read(p []byte) (int, error) {
	remaining := r.After - r.read
	if remaining <= 0 || r.R == nil {
		return 0, r.err()
	}
	if len(p) > remaining {
		p = p[:remaining]
	}
	n, err := r.R.Read(p)
	r.read += n
	return n, err
}

func (r *FailingReader) err() error {
	if r.Err == nil {
		return ErrFailingReader
	}
	return r.Err
}
