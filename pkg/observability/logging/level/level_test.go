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

package level

import "testing"

func TestGetID(t *testing.T) {
	tests := []struct {
		in       Level
		expected ID
	}{
		{Debug, DebugID},
		{Info, InfoID},
		{"INFO", InfoID},
		{Warn, WarnID},
		{Error, ErrorID},
		{Fatal, FatalID},
		{"trace", 0},
		{"", 0},
	}
	for _, test := range tests {
		t.Run(string(test.in), func(t *testing.T) {
			if id := GetID(test.in); id != test.expected {
				t.Errorf("expected %d got %d", test.expected, id)
			}
		})
	}
}

func TestFilterOption(t *testing.T) {
	for _, id := range []ID{0, DebugID, InfoID, WarnID, ErrorID, FatalID} {
		if FilterOption(id) == nil {
			t.Errorf("expected non-nil option for %d", id)
		}
	}
}
