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

// Package appinfo holds the identity of the running binary. The values are
// set once from main, and Version is also what the landing page displays.
package appinfo

import (
	"fmt"
	"os"
	"runtime"
)

var (
	// Name of the application
	Name string
	// Version of the application
	Version string
	// BuildTime is set by the linker at build time
	BuildTime string
	// GitCommitID is set by the linker at build time
	GitCommitID string
)

// Server identifies this host in logs. It defaults to the kernel hostname
// and is replaced by main.server_name when one is configured.
var Server, _ = os.Hostname()

// Set records the build identity of the binary
func Set(name, version, buildTime, gitCommitID string) {
	Name, Version, BuildTime, GitCommitID = name, version, buildTime, gitCommitID
}

func SetServer(server string) {
	if server != "" {
		Server = server
	}
}

// VersionString is the line printed by the -version flag
func VersionString() string {
	return fmt.Sprintf("%s version: %s, buildInfo: %s %s, goVersion: %s",
		Name, Version, BuildTime, GitCommitID, runtime.Version())
}

func PrintVersion() {
	fmt.Println(VersionString())
}
