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

// Singleton registers a type-safe factory for a component that is built
// once per Container and shared by every dependent. It is sugar over
// Builder.Register for the common case where the factory's return type is
// known at the call site.
func Singleton[T any](b *Builder, name string, deps []DependencySpec, factory func(ctx context.Context, deps []any) (T, error)) error {
	return registerTyped[T](b, name, ScopeSingleton, KindComponent, deps, factory)
}

// MustSingleton is Singleton, panicking on error. Intended for
// package-level var blocks and application wiring where a duplicate name
// is a programmer error caught in development.
func MustSingleton[T any](b *Builder, name string, deps []DependencySpec, factory func(ctx context.Context, deps []any) (T, error)) {
	if err := Singleton[T](b, name, deps, factory); err != nil {
		panic(err)
	}
}

// Prototype registers a type-safe factory for a component that is built
// fresh on every Get/New lookup.
func Prototype[T any](b *Builder, name string, deps []DependencySpec, factory func(ctx context.Context, deps []any) (T, error)) error {
	return registerTyped[T](b, name, ScopePrototype, KindComponent, deps, factory)
}

// MustPrototype is Prototype, panicking on error.
func MustPrototype[T any](b *Builder, name string, deps []DependencySpec, factory func(ctx context.Context, deps []any) (T, error)) {
	if err := Prototype[T](b, name, deps, factory); err != nil {
		panic(err)
	}
}

// Controller registers a singleton component tagged KindController: the
// route registry (app.mountControllers) discovers every active
// KindController descriptor and expects its instance to implement a
// Routes() method describing its verb+path table.
func Controller[T any](b *Builder, name string, deps []DependencySpec, factory func(ctx context.Context, deps []any) (T, error)) error {
	return registerTyped[T](b, name, ScopeSingleton, KindController, deps, factory)
}

// MustController is Controller, panicking on error.
func MustController[T any](b *Builder, name string, deps []DependencySpec, factory func(ctx context.Context, deps []any) (T, error)) {
	if err := Controller[T](b, name, deps, factory); err != nil {
		panic(err)
	}
}

// Scheduled registers a singleton component tagged KindScheduled: the
// scheduler discovers every active KindScheduled descriptor and expects
// its instance to implement scheduler.TaskProvider.
func Scheduled[T any](b *Builder, name string, deps []DependencySpec, factory func(ctx context.Context, deps []any) (T, error)) error {
	return registerTyped[T](b, name, ScopeSingleton, KindScheduled, deps, factory)
}

// MustScheduled is Scheduled, panicking on error.
func MustScheduled[T any](b *Builder, name string, deps []DependencySpec, factory func(ctx context.Context, deps []any) (T, error)) {
	if err := Scheduled[T](b, name, deps, factory); err != nil {
		panic(err)
	}
}

func registerTyped[T any](b *Builder, name string, scope Scope, kind Kind, deps []DependencySpec, factory func(ctx context.Context, deps []any) (T, error)) error {
	return b.Register(Descriptor{
		Name:         name,
		Type:         reflect.TypeFor[T](),
		Scope:        scope,
		Kind:         kind,
		Dependencies: deps,
		Factory: func(ctx context.Context, resolved []any) (any, error) {
			return factory(ctx, resolved)
		},
	})
}

// Get resolves the named component and asserts it to type T. It returns
// UnknownComponentError if no active descriptor registered that name, or a
// *TypeMismatchError if the component exists but is not assignable to T.
func Get[T any](c *Container, name string) (T, error) {
	var zero T
	v, err := c.Get(name)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, &TypeMismatchError{Name: name, Want: reflect.TypeFor[T](), Got: reflect.TypeOf(v)}
	}
	return t, nil
}

// MustGet is Get, panicking on error.
func MustGet[T any](c *Container, name string) T {
	v, err := Get[T](c, name)
	if err != nil {
		panic(err)
	}
	return v
}

// TypeMismatchError is returned by Get[T] when a component exists but its
// concrete type is not assignable to the requested T.
type TypeMismatchError struct {
	Name string
	Want reflect.Type
	Got  reflect.Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("container: component %q is %s, not assignable to %s", e.Name, e.Got, e.Want)
}

func (e *TypeMismatchError) HTTPStatus() int { return 500 }
