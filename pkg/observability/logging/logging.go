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

// Package logging provides the application's structured logger. Events are
// encoded as logfmt key=value lines and written to the console or to a
// rotated log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hydraresolver/hydra/pkg/config"
	"github.com/hydraresolver/hydra/pkg/observability/logging/level"

	"github.com/go-kit/log"
	gkl "github.com/go-kit/log/level"
	"github.com/go-stack/stack"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

var (
	_ Logger    = &logger{}
	_ io.Writer = &logger{}
)

// AppName is the value of the app key included on every log line
const AppName = "hydra"

type Logger interface {
	//
	SetLogLevel(level.Level)
	SetLogAsynchronous(bool)
	//
	Level() level.Level
	Close()
	//
	Log(logLevel level.Level, event string, detail Pairs)
	Debug(event string, detail Pairs)
	Info(event string, detail Pairs)
	Warn(event string, detail Pairs)
	Error(event string, detail Pairs)
	Fatal(code int, event string, detail Pairs)
	//
	// These funcs log synchronously even if the logger is set to Asynchronous
	LogSynchronous(logLevel level.Level, event string, detail Pairs)
	DebugSynchronous(event string, detail Pairs)
	InfoSynchronous(event string, detail Pairs)
	WarnSynchronous(event string, detail Pairs)
	ErrorSynchronous(event string, detail Pairs)
	//
	LogOnce(logLevel level.Level, key, event string, detail Pairs) bool
	DebugOnce(key, event string, detail Pairs) bool
	InfoOnce(key, event string, detail Pairs) bool
	WarnOnce(key, event string, detail Pairs) bool
	ErrorOnce(key, event string, detail Pairs) bool
	//
	HasLoggedOnce(logLevel level.Level, key string) bool
	HasWarnedOnce(key string) bool
}

// Pairs represents a key=value pair that helps to describe a log event
type Pairs map[string]any

type entry struct {
	level  level.Level
	event  string
	detail Pairs
	caller string
	ts     time.Time
}

type logFunc func(*entry)

// New returns a Logger for the provided logging configuration. When a log
// file is configured and the instance ID is set, the instance ID is inserted
// into the file name so several instances can share one config.
func New(conf *config.Config) Logger {
	var w io.Writer
	if conf == nil || conf.Logging == nil || conf.Logging.LogFile == "" {
		w = os.Stdout
	} else {
		logFile := conf.Logging.LogFile
		if conf.Main != nil && conf.Main.InstanceID > 0 {
			logFile = strings.Replace(logFile, ".log",
				"."+strconv.Itoa(conf.Main.InstanceID)+".log", 1)
		}
		w = &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    256,  // megabytes
			MaxBackups: 80,   // 256 megs @ 80 backups is 20GB of Logs
			MaxAge:     7,    // days
			Compress:   true, // Compress Rolled Backups
		}
	}
	l := newLogger(w)
	if conf != nil && conf.Logging != nil {
		l.SetLogLevel(level.Level(conf.Logging.LogLevel))
	} else {
		l.SetLogLevel(level.Info)
	}
	return l
}

// NoopLogger returns a Logger that discards everything
func NoopLogger() Logger {
	l := newLogger(nil)
	l.logFunc = func(*entry) {}
	l.SetLogLevel(level.Info)
	return l
}

// StreamLogger returns a Logger that writes to w
func StreamLogger(w io.Writer, logLevel level.Level) Logger {
	l := newLogger(w)
	l.SetLogLevel(logLevel)
	return l
}

// ConsoleLogger returns a Logger that writes to stdout
func ConsoleLogger(logLevel level.Level) Logger {
	return StreamLogger(os.Stdout, logLevel)
}

func newLogger(w io.Writer) *logger {
	l := &logger{
		now:      time.Now,
		exitFunc: os.Exit,
	}
	if w == nil {
		l.base = log.NewNopLogger()
	} else {
		l.writer = w
		l.base = log.With(log.NewLogfmtLogger(log.NewSyncWriter(w)), "app", AppName)
		if c, ok := w.(io.Closer); ok && c != nil && w != os.Stdout {
			l.closer = c
		}
	}
	l.logFunc = l.logAsynchronous
	return l
}

type logger struct {
	level          level.Level
	levelID        level.ID
	writer         io.Writer
	base           log.Logger
	filtered       log.Logger
	closer         io.Closer
	onceRanEntries sync.Map
	logFunc        logFunc
	now            func() time.Time
	exitFunc       func(int)
	wg             sync.WaitGroup
}

func (l *logger) Write(b []byte) (int, error) {
	if l.writer == nil {
		return 0, nil
	}
	return l.writer.Write(b)
}

func (l *logger) SetLogLevel(logLevel level.Level) {
	id := level.GetID(logLevel)
	if id == 0 {
		logLevel = level.Info
		id = level.InfoID
	}
	l.level = logLevel
	l.levelID = id
	l.filtered = gkl.NewFilter(l.base, level.FilterOption(id))
}

func (l *logger) SetLogAsynchronous(asyncEnabled bool) {
	if asyncEnabled {
		l.logFunc = l.logAsynchronous
	} else {
		l.logFunc = l.log
	}
}

func (l *logger) Level() level.Level {
	return l.level
}

func (l *logger) newEntry(logLevel level.Level, event string, detail Pairs) *entry {
	return &entry{
		level:  logLevel,
		event:  strings.TrimSpace(event),
		detail: detail,
		caller: callerOf(),
		ts:     l.now(),
	}
}

func (l *logger) Log(logLevel level.Level, event string, detail Pairs) {
	lid := level.GetID(logLevel)
	if lid == 0 || lid < l.levelID {
		return
	}
	l.logFunc(l.newEntry(logLevel, event, detail))
}

func (l *logger) logFuncConditionally(logLevel level.Level, levelID level.ID,
	event string, detail Pairs) {
	if l.levelID > levelID {
		return
	}
	l.logFunc(l.newEntry(logLevel, event, detail))
}

func (l *logger) Debug(event string, detail Pairs) {
	l.logFuncConditionally(level.Debug, level.DebugID, event, detail)
}

func (l *logger) Info(event string, detail Pairs) {
	l.logFuncConditionally(level.Info, level.InfoID, event, detail)
}

func (l *logger) Warn(event string, detail Pairs) {
	l.logFuncConditionally(level.Warn, level.WarnID, event, detail)
}

func (l *logger) Error(event string, detail Pairs) {
	l.logFuncConditionally(level.Error, level.ErrorID, event, detail)
}

func (l *logger) LogSynchronous(logLevel level.Level, event string, detail Pairs) {
	lid := level.GetID(logLevel)
	if lid == 0 || lid < l.levelID {
		return
	}
	l.log(l.newEntry(logLevel, event, detail))
}

func (l *logger) logConditionally(logLevel level.Level, levelID level.ID,
	event string, detail Pairs) {
	if l.levelID > levelID {
		return
	}
	l.log(l.newEntry(logLevel, event, detail))
}

func (l *logger) DebugSynchronous(event string, detail Pairs) {
	l.logConditionally(level.Debug, level.DebugID, event, detail)
}

func (l *logger) InfoSynchronous(event string, detail Pairs) {
	l.logConditionally(level.Info, level.InfoID, event, detail)
}

func (l *logger) WarnSynchronous(event string, detail Pairs) {
	l.logConditionally(level.Warn, level.WarnID, event, detail)
}

func (l *logger) ErrorSynchronous(event string, detail Pairs) {
	l.logConditionally(level.Error, level.ErrorID, event, detail)
}

// Fatal logs the event synchronously and exits the process with code.
// A code of 0 exits with 1; a negative code logs without exiting (for tests).
func (l *logger) Fatal(code int, event string, detail Pairs) {
	l.wg.Wait()
	l.log(l.newEntry(level.Fatal, event, detail))
	if code < 0 {
		return
	}
	if code == 0 {
		code = 1
	}
	l.Close()
	l.exitFunc(code)
}

func (l *logger) LogOnce(logLevel level.Level, key, event string, detail Pairs) bool {
	lid := level.GetID(logLevel)
	if lid == 0 || lid < l.levelID {
		return false
	}
	key = string(logLevel) + "." + key
	if _, loaded := l.onceRanEntries.LoadOrStore(key, true); loaded {
		return false
	}
	l.logFunc(l.newEntry(logLevel, event, detail))
	return true
}

func (l *logger) DebugOnce(key, event string, detail Pairs) bool {
	return l.LogOnce(level.Debug, key, event, detail)
}

func (l *logger) InfoOnce(key, event string, detail Pairs) bool {
	return l.LogOnce(level.Info, key, event, detail)
}

func (l *logger) WarnOnce(key, event string, detail Pairs) bool {
	return l.LogOnce(level.Warn, key, event, detail)
}

func (l *logger) ErrorOnce(key, event string, detail Pairs) bool {
	return l.LogOnce(level.Error, key, event, detail)
}

func (l *logger) HasWarnedOnce(key string) bool {
	return l.HasLoggedOnce(level.Warn, key)
}

func (l *logger) HasLoggedOnce(logLevel level.Level, key string) bool {
	_, ok := l.onceRanEntries.Load(string(logLevel) + "." + key)
	return ok
}

func (l *logger) logAsynchronous(e *entry) {
	l.wg.Add(1)
	go func() {
		l.log(e)
		l.wg.Done()
	}()
}

func (l *logger) log(e *entry) {
	kvs := make([]any, 0, 8+(len(e.detail)*2))
	kvs = append(kvs, "time", e.ts.UTC().Format(time.RFC3339Nano))
	if e.caller != "" {
		kvs = append(kvs, "caller", e.caller)
	}
	kvs = append(kvs, "event", e.event)
	kvs = append(kvs, sortedPairs(e.detail)...)
	switch e.level {
	case level.Debug:
		gkl.Debug(l.filtered).Log(kvs...)
	case level.Info:
		gkl.Info(l.filtered).Log(kvs...)
	case level.Warn:
		gkl.Warn(l.filtered).Log(kvs...)
	case level.Error:
		gkl.Error(l.filtered).Log(kvs...)
	case level.Fatal:
		// fatal events bypass the level filter
		log.WithPrefix(l.base, gkl.Key(), string(level.Fatal)).Log(kvs...)
	}
}

func sortedPairs(detail Pairs) []any {
	if len(detail) == 0 {
		return nil
	}
	keys := make([]string, 0, len(detail))
	for k := range detail {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		out = append(out, k, stringValue(detail[k]))
	}
	return out
}

func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case error:
		return t.Error()
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprintf("%v", v)
}

const loggingPkg = "/pkg/observability/logging"

// callerOf returns the first frame in the call stack outside of the logging
// packages, as a module-relative file:line
func callerOf() string {
	for _, c := range stack.Trace().TrimRuntime() {
		s := fmt.Sprintf("%+v", c)
		if strings.Contains(s, loggingPkg) {
			continue
		}
		if i := strings.Index(s, "/pkg/"); i >= 0 {
			return s[i+1:]
		}
		if i := strings.Index(s, "/cmd/"); i >= 0 {
			return s[i+1:]
		}
		return s
	}
	return ""
}

// Close waits for pending asynchronous writes and closes the underlying
// log file, if any
func (l *logger) Close() {
	l.wg.Wait()
	if l.closer != nil {
		l.closer.Close()
	}
}
