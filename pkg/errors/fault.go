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

// Severity describes how far the effects of a Fault reach
type Severity int

const (
	// SeverityRequest faults abort only the request in which they occur
	SeverityRequest Severity = iota
	// SeverityProcess faults indicate a broken host environment and abort the process
	SeverityProcess
)

func (s Severity) String() string {
	switch s {
	case SeverityRequest:
		return "request"
	case SeverityProcess:
		return "process"
	}
	return "unknown"
}

// Fault is an internal error annotated with its Severity. A Fault's message
// is meant for logs only and must never be written to a client.
type Fault struct {
	Severity Severity
	Err      error
}

func (f *Fault) Error() string {
	if f.Err == nil {
		return f.Severity.String() + " fault"
	}
	return f.Severity.String() + " fault: " + f.Err.Error()
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// NewRequestFault wraps err as a request-scoped Fault
func NewRequestFault(err error) error {
	return &Fault{Severity: SeverityRequest, Err: err}
}

// NewProcessFault wraps err as a process-fatal Fault
func NewProcessFault(err error) error {
	return &Fault{Severity: SeverityProcess, Err: err}
}

// IsProcessFatal returns true if err is, or wraps, a process-fatal Fault
func IsProcessFatal(err error) bool {
	var f *Fault
	if !As(err, &f) {
		return false
	}
	return f.Severity == SeverityProcess
}
