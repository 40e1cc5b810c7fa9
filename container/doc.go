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

// Package container implements a small explicit-registration dependency
// injection container.
//
// Components are registered with a Builder as Descriptors carrying a
// factory function and a declared list of dependencies. Resolve walks the
// declared dependency graph (never reflecting over constructor parameter
// types), orders it topologically, detects cycles and ambiguous matches,
// and instantiates every active component exactly once for singletons or
// on every lookup for prototypes.
//
// There is no struct-tag or reflection-based autowiring: every dependency
// a component needs is declared up front via DependencySpec, in the same
// spirit as config's functional-option Builder and binding's explicit
// struct-tag driven binder — construction is data, not magic.
package container
