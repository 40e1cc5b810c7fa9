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

import "fmt"

// SourceNamer is implemented by a Source that wants to identify itself in
// Provenance() output. Sources that don't implement it are named
// "source[<index>]".
type SourceNamer interface {
	Name() string
}

// Provenance reports, for every leaf key currently loaded, the name of
// the source that supplied its winning value. Keys are dot-flattened the
// same way getValueFromMap reads them.
func (c *Config) Provenance() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]string, len(c.provenance))
	for k, v := range c.provenance {
		out[k] = v
	}
	return out
}

func sourceName(src Source, index int) string {
	if n, ok := src.(SourceNamer); ok {
		return n.Name()
	}
	return fmt.Sprintf("source[%d]", index)
}

// flattenKeys returns every dot-joined leaf key path reachable from m.
func flattenKeys(prefix string, m map[string]any, out map[string]struct{}) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			flattenKeys(key, nested, out)
			continue
		}
		out[key] = struct{}{}
	}
}
