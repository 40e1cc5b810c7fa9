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

import (
	"fmt"
	"strings"
)

// maxSubstituteDepth bounds placeholder expansion so a key that
// (accidentally or maliciously) references itself fails fast instead of
// recursing forever.
const maxSubstituteDepth = 16

// Substitute resolves a "${key:default}" or "${key}" placeholder against
// cfg, generalizing the os.ExpandEnv-style expansion the rest of the
// package uses for path values. Unlike os.ExpandEnv, Substitute looks the
// key up in the loaded configuration tree (falling back to the literal
// default when the key is absent) and resolves placeholders found inside
// the looked-up value recursively, detecting cycles.
//
// A bare string with no "${...}" markers is returned unchanged.
func Substitute(cfg *Config, value string) (string, error) {
	return substitute(cfg, value, make(map[string]struct{}), 0)
}

func substitute(cfg *Config, value string, seen map[string]struct{}, depth int) (string, error) {
	if depth > maxSubstituteDepth {
		return "", fmt.Errorf("config: placeholder expansion exceeded depth %d (possible cycle)", maxSubstituteDepth)
	}

	var b strings.Builder
	rest := value

	for {
		start := strings.Index(rest, "${")
		if start < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.Index(rest[start:], "}")
		if end < 0 {
			b.WriteString(rest)
			break
		}
		end += start

		b.WriteString(rest[:start])
		expr := rest[start+2 : end]
		rest = rest[end+1:]

		key, def, hasDefault := strings.Cut(expr, ":")
		key = strings.TrimSpace(key)

		if _, cyc := seen[key]; cyc {
			return "", fmt.Errorf("config: cyclic placeholder reference on key %q", key)
		}

		var resolved string
		if v := cfg.getValueFromMap(key); v != nil {
			resolved = fmt.Sprint(v)
		} else if hasDefault {
			resolved = def
		} else {
			return "", fmt.Errorf("config: placeholder key %q not found and no default given", key)
		}

		if strings.Contains(resolved, "${") {
			nestedSeen := make(map[string]struct{}, len(seen)+1)
			for k := range seen {
				nestedSeen[k] = struct{}{}
			}
			nestedSeen[key] = struct{}{}

			expanded, err := substitute(cfg, resolved, nestedSeen, depth+1)
			if err != nil {
				return "", err
			}
			resolved = expanded
		}

		b.WriteString(resolved)
	}

	return b.String(), nil
}
