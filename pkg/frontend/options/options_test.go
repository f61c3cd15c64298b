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

package options

import (
	"errors"
	"testing"
	"time"

	herr "github.com/hydraresolver/hydra/pkg/errors"
)

func TestClone(t *testing.T) {
	f1 := New()
	f1.ListenAddress = "127.0.0.1"
	f2 := f1.Clone()
	if *f1 != *f2 {
		t.Error("expected identical clone")
	}
	if f1 == f2 {
		t.Error("expected clone to be a distinct object")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
		err    error
	}{
		{"defaults", func(*Options) {}, nil},
		{"port zero", func(o *Options) { o.ListenPort = 0 }, herr.ErrInvalidOptions},
		{"port high", func(o *Options) { o.ListenPort = 65536 }, herr.ErrInvalidOptions},
		{"limit", func(o *Options) { o.ConnectionsLimit = -1 }, herr.ErrInvalidOptions},
		{"header timeout", func(o *Options) { o.ReadHeaderTimeout = -time.Second }, herr.ErrInvalidOptions},
		{"drain timeout", func(o *Options) { o.DrainTimeout = -time.Second }, herr.ErrInvalidOptions},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			o := New()
			test.modify(o)
			if err := o.Validate(); !errors.Is(err, test.err) {
				t.Errorf("expected %v got %v", test.err, err)
			}
		})
	}
}
