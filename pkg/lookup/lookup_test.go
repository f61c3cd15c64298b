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

package lookup

import (
	"strconv"
	"sync"
	"testing"
)

func TestBuilder(t *testing.T) {
	b := NewBuilder()
	if err := b.Set("abc123", "https://example.com/a"); err != nil {
		t.Fatal(err)
	}
	if err := b.Set("abc123", "https://example.com/b"); err != nil {
		t.Fatal(err)
	}
	if err := b.Set("", "https://example.com/c"); err != ErrEmptyKey {
		t.Errorf("expected %v got %v", ErrEmptyKey, err)
	}
	if b.Len() != 1 {
		t.Errorf("expected %d got %d", 1, b.Len())
	}

	tbl := b.Build()
	if v, ok := tbl.Get("abc123"); !ok || v != "https://example.com/b" {
		t.Errorf("expected last write to win, got %s", v)
	}
	if err := b.Set("def", "x"); err != ErrTableSealed {
		t.Errorf("expected %v got %v", ErrTableSealed, err)
	}
	if tbl.Len() != 1 {
		t.Errorf("expected %d got %d", 1, tbl.Len())
	}
	if b.Build().Len() != 1 {
		t.Error("expected repeat Build to return the same entries")
	}
}

func TestNilTable(t *testing.T) {
	var tbl *Table
	if _, ok := tbl.Get("x"); ok {
		t.Error("expected miss on nil table")
	}
	if tbl.Len() != 0 {
		t.Error("expected empty nil table")
	}
}

func TestNew(t *testing.T) {
	tbl, err := New(map[string]string{"abc123": "https://example.com/a"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tbl.Get("ABC123"); ok {
		t.Error("expected case-sensitive lookup")
	}
	if _, err = New(map[string]string{"": "x"}); err != ErrEmptyKey {
		t.Errorf("expected %v got %v", ErrEmptyKey, err)
	}
}

func TestConcurrentReads(t *testing.T) {
	b := NewBuilder()
	for i := 0; i < 1000; i++ {
		b.Set(strconv.Itoa(i), "https://example.com/"+strconv.Itoa(i))
	}
	tbl := b.Build()
	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for g := 0; g < 32; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				k := strconv.Itoa(i)
				if v, ok := tbl.Get(k); !ok || v != "https://example.com/"+k {
					errs <- k
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for k := range errs {
		t.Errorf("inconsistent read for %s", k)
	}
}
