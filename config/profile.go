// Copyright 2025 The Rivaas Authors
// Copyright 2025 Company.info B.V.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import "os"

// DefaultProfileEnvVar is the environment variable ActiveProfile falls
// back to when no explicit name is given.
const DefaultProfileEnvVar = "MITSUKI_PROFILE"

// ActiveProfile returns the application profile named by the given
// environment variable, or by MITSUKI_PROFILE if envVarName is empty.
// An unset variable resolves to "default".
func ActiveProfile(envVarName string) string {
	if envVarName == "" {
		envVarName = DefaultProfileEnvVar
	}
	if v := os.Getenv(envVarName); v != "" {
		return v
	}
	return "default"
}
