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

package appinfo

import (
	"strings"
	"testing"
)

func TestSet(t *testing.T) {
	Set("hydra", "1.0.0", "now", "abc123")
	if Name != "hydra" || Version != "1.0.0" || BuildTime != "now" || GitCommitID != "abc123" {
		t.Errorf("unexpected values %s %s %s %s", Name, Version, BuildTime, GitCommitID)
	}
	v := VersionString()
	if !strings.HasPrefix(v, "hydra version: 1.0.0, buildInfo: now abc123, goVersion: go") {
		t.Errorf("unexpected version string %s", v)
	}
}

func TestSetServer(t *testing.T) {
	orig := Server
	defer func() { Server = orig }()
	SetServer("edge-1")
	if Server != "edge-1" {
		t.Errorf("expected %s got %s", "edge-1", Server)
	}
	SetServer("")
	if Server != "edge-1" {
		t.Errorf("expected empty server name to be ignored, got %s", Server)
	}
}
