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

// Package lookup provides the immutable GUID-to-URL table that is built once
// at startup and shared by every request handler
package lookup

import (
	"errors"
	"sync"
)

// ErrTableSealed is an error for a write to a Builder after Build was called
var ErrTableSealed = errors.New("lookup table is sealed")

// ErrEmptyKey is an error for an attempt to store the empty GUID
var ErrEmptyKey = errors.New("empty lookup key")

// Table is an immutable mapping of normalized GUID to URL. A Table has no
// writers once built, so it is safe for any number of concurrent readers
// without locking.
type Table struct {
	entries map[string]string
}

// Get returns the URL stored for key
func (t *Table) Get(key string) (string, bool) {
	if t == nil {
		return "", false
	}
	v, ok := t.entries[key]
	return v, ok
}

// Len returns the number of entries in the Table
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Builder accumulates entries for a Table. Builder is safe for concurrent use.
type Builder struct {
	mtx     sync.Mutex
	entries map[string]string
	sealed  bool
}

// NewBuilder returns a new Builder
func NewBuilder() *Builder {
	return &Builder{entries: make(map[string]string)}
}

// Set stores url for key. When key was already set, the later write wins.
func (b *Builder) Set(key, url string) error {
	if key == "" {
		return ErrEmptyKey
	}
	b.mtx.Lock()
	defer b.mtx.Unlock()
	if b.sealed {
		return ErrTableSealed
	}
	b.entries[key] = url
	return nil
}

// Len returns the number of entries set so far
func (b *Builder) Len() int {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return len(b.entries)
}

// Build seals the Builder and returns the Table. Build may be called more than
// once; every call returns a Table over the same entries.
func (b *Builder) Build() *Table {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	b.sealed = true
	return &Table{entries: b.entries}
}

// New returns a Table built from the provided entries. It is a convenience for
// tests and small static tables.
func New(entries map[string]string) (*Table, error) {
	b := NewBuilder()
	for k, v := range entries {
		if err := b.Set(k, v); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}
