// Copyright 2025 The Rivaas Authors
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

package container

import "fmt"

// Builder accumulates Descriptors before a Container resolves them.
// Registration is explicit: nothing is discovered by scanning packages or
// reflecting over exported symbols, so the order components appear in a
// Builder has no bearing on resolution order (that is computed from the
// declared Dependencies graph).
type Builder struct {
	descriptors []*Descriptor
	names       map[string]struct{}
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{names: make(map[string]struct{})}
}

// Register adds d to the builder. It is an error to register two
// descriptors with the same Name.
func (b *Builder) Register(d Descriptor) error {
	if d.Name == "" {
		return fmt.Errorf("container: descriptor requires a non-empty Name")
	}
	if _, exists := b.names[d.Name]; exists {
		return &DuplicateDescriptorError{Name: d.Name}
	}
	if d.Kind == "" {
		d.Kind = KindComponent
	}
	cp := d
	b.names[d.Name] = struct{}{}
	b.descriptors = append(b.descriptors, &cp)
	return nil
}

// MustRegister is Register, panicking on error. Intended for package-level
// var blocks where a duplicate name is a programmer error, not a runtime
// condition.
func (b *Builder) MustRegister(d Descriptor) {
	if err := b.Register(d); err != nil {
		panic(err)
	}
}

// Descriptors returns a snapshot of every descriptor registered so far.
func (b *Builder) Descriptors() []*Descriptor {
	out := make([]*Descriptor, len(b.descriptors))
	copy(out, b.descriptors)
	return out
}
