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

// Package logger holds the process-wide Logger used by code that runs
// before, or outside of, a configured ServerInstance. Until SetLogger is
// called it writes to the console at INFO.
package logger

import (
	"sync/atomic"

	"github.com/hydraresolver/hydra/pkg/observability/logging"
	"github.com/hydraresolver/hydra/pkg/observability/logging/level"
)

type holder struct{ logging.Logger }

var current atomic.Pointer[holder]

func init() {
	current.Store(&holder{logging.ConsoleLogger(level.Info)})
}

// Logger returns the process-wide Logger
func Logger() logging.Logger {
	return current.Load().Logger
}

// SetLogger replaces the process-wide Logger. A nil l is ignored.
func SetLogger(l logging.Logger) {
	if l != nil {
		current.Store(&holder{l})
	}
}

func SetLogLevel(logLevel level.Level) { Logger().SetLogLevel(logLevel) }

func Level() level.Level { return Logger().Level() }

func Debug(event string, detail logging.Pairs) { Logger().Debug(event, detail) }

func Info(event string, detail logging.Pairs) { Logger().Info(event, detail) }

func Warn(event string, detail logging.Pairs) { Logger().Warn(event, detail) }

func Error(event string, detail logging.Pairs) { Logger().Error(event, detail) }

// Fatal logs synchronously and exits with code, unless code is negative
func Fatal(code int, event string, detail logging.Pairs) {
	Logger().Fatal(code, event, detail)
}

func WarnOnce(key, event string, detail logging.Pairs) bool {
	return Logger().WarnOnce(key, event, detail)
}

func HasWarnedOnce(key string) bool {
	return Logger().HasWarnedOnce(key)
}
