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

import (
	"context"
	"reflect"
)

// Scope controls how many instances a Descriptor produces.
type Scope int

const (
	// ScopeSingleton components are instantiated once per Container and cached.
	ScopeSingleton Scope = iota
	// ScopePrototype components are instantiated on every Get/New lookup.
	ScopePrototype
)

func (s Scope) String() string {
	if s == ScopePrototype {
		return "prototype"
	}
	return "singleton"
}

// Kind classifies what role a descriptor plays in the application. The
// route registry and scheduler use Kind to find the descriptors they
// should inspect for Routes()/ScheduledTasks() without either package
// depending on the other.
type Kind string

const (
	// KindComponent is a plain, generically-injectable component.
	KindComponent Kind = "component"
	// KindController marks a descriptor whose instance implements a
	// Routes() []app.Route method, discovered by the route registry.
	KindController Kind = "controller"
	// KindScheduled marks a descriptor whose instance implements a
	// ScheduledTasks() []scheduler.Spec method, discovered by the scheduler.
	KindScheduled Kind = "scheduled"
	// KindProvider marks a descriptor produced by a Provides() factory
	// method rather than a top-level Register call.
	KindProvider Kind = "provider"
)

// DependencySpec declares one constructor dependency. Nothing is ever
// inferred from reflection over a struct's fields; every dependency a
// factory needs is declared explicitly when it is registered.
type DependencySpec struct {
	// ParamName identifies the dependency within its consumer, used only
	// for diagnostics (error messages, Dump()).
	ParamName string

	// DeclaredType is the dependency's type, used to find candidates when
	// NameOverride is empty.
	DeclaredType reflect.Type

	// NameOverride pins the dependency to one specific descriptor name,
	// bypassing type-based matching entirely.
	NameOverride string

	// Optional means a missing match resolves to the zero value of
	// DeclaredType instead of raising UnresolvedDependencyError.
	Optional bool

	// Default, when non-nil, is used in place of a missing match instead
	// of the zero value. Implies Optional.
	Default any

	// ValuePlaceholder, when non-empty, resolves the dependency from the
	// configuration store instead of from another component — the same
	// ${key:default} syntax used by config.Substitute.
	ValuePlaceholder string
}

// Factory builds one instance of a component given its resolved
// dependencies, in the same declared order as Descriptor.Dependencies.
type Factory func(ctx context.Context, deps []any) (any, error)

// Descriptor is the registration record for one component: a name, a
// declared type, a scope, a factory, and the dependencies the factory
// needs before it can run.
type Descriptor struct {
	Name         string
	Type         reflect.Type
	Scope        Scope
	Kind         Kind
	Profiles     []string // empty means "active in every profile"
	Dependencies []DependencySpec
	Factory      Factory

	// ownerDescriptor is set when this descriptor was produced by a
	// Provides() method on another descriptor's instance, so Resolve can
	// instantiate the owner first.
	ownerDescriptor string
}

// activeInProfile reports whether d should participate in resolution for
// the given profile. An empty Profiles list means "always active".
func (d *Descriptor) activeInProfile(profile string) bool {
	if len(d.Profiles) == 0 {
		return true
	}
	for _, p := range d.Profiles {
		if p == profile {
			return true
		}
	}
	return false
}
