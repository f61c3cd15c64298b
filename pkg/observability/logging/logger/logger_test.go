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

package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hydraresolver/hydra/pkg/observability/logging"
	"github.com/hydraresolver/hydra/pkg/observability/logging/level"
)

func TestSetLogger(t *testing.T) {
	orig := Logger()
	defer SetLogger(orig)

	buf := &bytes.Buffer{}
	l := logging.StreamLogger(buf, level.Debug)
	l.SetLogAsynchronous(false)
	SetLogger(l)
	SetLogger(nil) // ignored

	if Logger() != l {
		t.Fatal("expected package logger to be replaced")
	}
	Info("test event", logging.Pairs{"key": "value"})
	Debug("debug event", nil)
	if !strings.Contains(buf.String(), "event=\"test event\"") {
		t.Errorf("missing info event in %s", buf.String())
	}
	if !strings.Contains(buf.String(), "event=\"debug event\"") {
		t.Errorf("missing debug event in %s", buf.String())
	}

	if !WarnOnce("k", "warned", nil) {
		t.Error("expected first WarnOnce to log")
	}
	if !HasWarnedOnce("k") {
		t.Error("expected warn-once key to be recorded")
	}

	SetLogLevel(level.Error)
	if Level() != level.Error {
		t.Errorf("expected %s got %s", level.Error, Level())
	}
}
