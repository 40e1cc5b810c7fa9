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
	"fmt"
	"reflect"
)

// Provides registers a component produced by a factory method hanging off
// another, already-registered descriptor (a "configuration class" in the
// spring-style sense: a singleton whose job is to build other
// singletons). ownerName must already be registered in b. The produced
// descriptor declares ownerName as its sole dependency, so the owner is
// guaranteed to be built first, and honors its own declared scope rather
// than always collapsing to the owner's scope — a provider registered
// with Prototype scope is rebuilt on every lookup even though its owner
// is a singleton.
func Provides[O any, T any](b *Builder, ownerName string, name string, scope Scope, produce func(ctx context.Context, owner O) (T, error)) error {
	ownerType := reflect.TypeFor[O]()

	return b.Register(Descriptor{
		Name:  name,
		Type:  reflect.TypeFor[T](),
		Scope: scope,
		Kind:  KindProvider,
		Dependencies: []DependencySpec{
			{ParamName: "owner", DeclaredType: ownerType, NameOverride: ownerName},
		},
		Factory: func(ctx context.Context, deps []any) (any, error) {
			owner, ok := deps[0].(O)
			if !ok {
				return nil, fmt.Errorf("container: provider %q: owner %q is not assignable to %s", name, ownerName, ownerType)
			}
			return produce(ctx, owner)
		},
		ownerDescriptor: ownerName,
	})
}
