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
	"sync"
	"sync/atomic"

	"github.com/mitsuki-dev/mitsuki/config"
)

// Shutdownable is implemented by components that need to release
// resources when the owning Container shuts down. Shutdown runs in
// reverse topological order, mirroring the order instances were created
// in so that a component is always torn down before the dependencies it
// holds a reference to.
type Shutdownable interface {
	Shutdown(ctx context.Context) error
}

// Container holds the resolved component graph for one profile. It is
// built once by Resolve and is safe for concurrent Get/New calls
// afterward.
type Container struct {
	profile string
	cfg     *config.Config

	mu          sync.RWMutex
	descriptors map[string]*Descriptor
	order       []string // topological build order, singletons only
	instances   map[string]any

	frozen atomic.Bool
}

// Resolve builds a Container from every descriptor in b that is active in
// the given profile. It performs, in order: profile filtering, dependency
// matching, cycle detection, topological sort, and ordered instantiation
// of every singleton descriptor. Prototype descriptors are validated but
// not eagerly instantiated; call Get to produce their first instance.
func Resolve(ctx context.Context, b *Builder, cfg *config.Config, profile string) (*Container, error) {
	all := b.Descriptors()

	active := make(map[string]*Descriptor, len(all))
	for _, d := range all {
		if d.activeInProfile(profile) {
			active[d.Name] = d
		}
	}

	edges, err := buildEdges(active)
	if err != nil {
		return nil, err
	}

	if cyc := detectCycle(active, edges); cyc != nil {
		return nil, &CircularDependencyError{Cycle: cyc}
	}

	order, err := topoSort(active, edges)
	if err != nil {
		return nil, err
	}

	c := &Container{
		profile:     profile,
		cfg:         cfg,
		descriptors: active,
		order:       order,
		instances:   make(map[string]any, len(active)),
	}

	for _, name := range order {
		d := active[name]
		if d.Scope != ScopeSingleton {
			continue
		}
		inst, err := c.instantiate(ctx, d)
		if err != nil {
			return nil, fmt.Errorf("container: building %q: %w", name, err)
		}
		c.instances[name] = inst
	}

	return c, nil
}

// edge records, for one descriptor, the resolved target name for each of
// its DependencySpecs (empty string for a ValuePlaceholder-backed or
// Optional-with-no-match dependency).
type edge struct {
	spec   DependencySpec
	target string // resolved descriptor name, or "" if none
}

func buildEdges(active map[string]*Descriptor) (map[string][]edge, error) {
	edges := make(map[string][]edge, len(active))

	for name, d := range active {
		var list []edge
		for _, spec := range d.Dependencies {
			if spec.ValuePlaceholder != "" {
				list = append(list, edge{spec: spec})
				continue
			}

			target, err := matchDependency(name, spec, active)
			if err != nil {
				return nil, err
			}
			list = append(list, edge{spec: spec, target: target})
		}
		edges[name] = list
	}

	return edges, nil
}

func matchDependency(consumer string, spec DependencySpec, active map[string]*Descriptor) (string, error) {
	if spec.NameOverride != "" {
		if _, ok := active[spec.NameOverride]; !ok {
			if spec.Optional || spec.Default != nil {
				return "", nil
			}
			return "", &UnresolvedDependencyError{Consumer: consumer, Param: spec.ParamName, Type: typeName(spec.DeclaredType)}
		}
		return spec.NameOverride, nil
	}

	var candidates []string
	for name, d := range active {
		if d.Type == spec.DeclaredType {
			candidates = append(candidates, name)
		}
	}

	switch len(candidates) {
	case 0:
		if spec.Optional || spec.Default != nil {
			return "", nil
		}
		return "", &UnresolvedDependencyError{Consumer: consumer, Param: spec.ParamName, Type: typeName(spec.DeclaredType)}
	case 1:
		return candidates[0], nil
	default:
		return "", &AmbiguousDependencyError{
			Consumer:   consumer,
			Param:      spec.ParamName,
			Type:       typeName(spec.DeclaredType),
			Candidates: candidates,
		}
	}
}

func typeName(t interface{ String() string }) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

// detectCycle runs an iterative DFS over the dependency graph and returns
// the first cycle found, naming every node on it, or nil if the graph is
// acyclic.
func detectCycle(active map[string]*Descriptor, edges map[string][]edge) []string {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(active))
	var path []string
	var cycle []string

	var visit func(name string) bool
	visit = func(name string) bool {
		color[name] = gray
		path = append(path, name)

		for _, e := range edges[name] {
			if e.target == "" {
				continue
			}
			switch color[e.target] {
			case white:
				if visit(e.target) {
					return true
				}
			case gray:
				// Found the cycle: slice path from the first occurrence of e.target.
				for i, n := range path {
					if n == e.target {
						cycle = append(append([]string{}, path[i:]...), e.target)
						return true
					}
				}
			}
		}

		path = path[:len(path)-1]
		color[name] = black
		return false
	}

	names := sortedNames(active)
	for _, name := range names {
		if color[name] == white {
			if visit(name) {
				return cycle
			}
		}
	}
	return nil
}

// topoSort runs Kahn's algorithm over the dependency graph (edges point
// from consumer to dependency) and returns an order where every
// descriptor appears after everything it depends on.
func topoSort(active map[string]*Descriptor, edges map[string][]edge) ([]string, error) {
	indegree := make(map[string]int, len(active))
	dependents := make(map[string][]string, len(active)) // target -> consumers
	for name := range active {
		indegree[name] = 0
	}
	for name, list := range edges {
		for _, e := range list {
			if e.target == "" {
				continue
			}
			indegree[name]++
			dependents[e.target] = append(dependents[e.target], name)
		}
	}

	var queue []string
	for _, name := range sortedNames(active) {
		if indegree[name] == 0 {
			queue = append(queue, name)
		}
	}

	var order []string
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		order = append(order, n)

		next := dependents[n]
		for _, dep := range next {
			indegree[dep]--
			if indegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if len(order) != len(active) {
		// A cycle slipped past detectCycle (shouldn't happen); fail safe.
		return nil, fmt.Errorf("container: dependency graph did not resolve to a total order")
	}

	// Kahn's algorithm naturally produces dependency-first order already
	// because we push a node onto the queue only once every consumer
	// edge pointing away from a dependency has been retired... this
	// implementation pushes dependents of a freshly-zeroed node, so the
	// resulting order already lists dependencies before consumers.
	return order, nil
}

func sortedNames(active map[string]*Descriptor) []string {
	names := make([]string, 0, len(active))
	for name := range active {
		names = append(names, name)
	}
	// Deterministic order matters for reproducible cycle/ambiguity errors.
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
	return names
}

// instantiate resolves d's dependencies (recursively producing fresh
// prototype instances as needed) and calls its Factory.
func (c *Container) instantiate(ctx context.Context, d *Descriptor) (any, error) {
	deps := make([]any, len(d.Dependencies))
	for i, spec := range d.Dependencies {
		v, err := c.resolveOne(ctx, d.Name, spec)
		if err != nil {
			return nil, err
		}
		deps[i] = v
	}
	return d.Factory(ctx, deps)
}

func (c *Container) resolveOne(ctx context.Context, consumer string, spec DependencySpec) (any, error) {
	if spec.ValuePlaceholder != "" {
		if c.cfg == nil {
			return spec.Default, nil
		}
		return config.Substitute(c.cfg, spec.ValuePlaceholder)
	}

	target := spec.NameOverride
	if target == "" {
		for name, d := range c.descriptors {
			if d.Type == spec.DeclaredType {
				target = name
				break
			}
		}
	}

	if target == "" {
		if spec.Default != nil {
			return spec.Default, nil
		}
		return nil, nil
	}

	return c.Get(target)
}

// Get returns the named component, building it if necessary. Singleton
// components are cached after their first build; prototype components are
// rebuilt, and their own dependency subgraph re-resolved, on every call.
func (c *Container) Get(name string) (any, error) {
	c.mu.RLock()
	d, ok := c.descriptors[name]
	if !ok {
		c.mu.RUnlock()
		return nil, &UnknownComponentError{Name: name}
	}
	if d.Scope == ScopeSingleton {
		inst, cached := c.instances[name]
		c.mu.RUnlock()
		if cached {
			return inst, nil
		}
	} else {
		c.mu.RUnlock()
	}

	ctx := context.Background()
	inst, err := c.instantiate(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("container: building %q: %w", name, err)
	}

	if d.Scope == ScopeSingleton {
		c.mu.Lock()
		c.instances[name] = inst
		c.mu.Unlock()
	}

	return inst, nil
}

// New always builds a fresh instance of name, regardless of its declared
// Scope. It is useful for tests that need an isolated instance of an
// otherwise-singleton component.
func (c *Container) New(ctx context.Context, name string) (any, error) {
	c.mu.RLock()
	d, ok := c.descriptors[name]
	c.mu.RUnlock()
	if !ok {
		return nil, &UnknownComponentError{Name: name}
	}
	return c.instantiate(ctx, d)
}

// Descriptors returns every active descriptor, controllers and scheduled
// tasks included, in resolution order.
func (c *Container) Descriptors() []*Descriptor {
	out := make([]*Descriptor, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.descriptors[name])
	}
	return out
}

// ByKind returns the instances of every active descriptor whose Kind
// matches, in resolution order. Used by the route registry to discover
// controllers and by the scheduler to discover task providers.
func (c *Container) ByKind(kind Kind) ([]any, error) {
	var out []any
	for _, name := range c.order {
		d := c.descriptors[name]
		if d.Kind != kind {
			continue
		}
		inst, err := c.Get(name)
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	return out, nil
}

// Freeze prevents further structural changes to the container. Resolve
// already returns a container whose descriptor set is fixed; Freeze is
// exposed for callers (the application runtime) that want to assert the
// container has passed startup and reject any late registration attempt
// routed through it by mistake.
func (c *Container) Freeze() {
	c.frozen.Store(true)
}

func (c *Container) Frozen() bool {
	return c.frozen.Load()
}

// Shutdown calls Shutdown(ctx) on every singleton instance implementing
// Shutdownable, in reverse build order, so a component is always torn
// down before whatever it depends on. Errors are collected, not
// short-circuited: every shutdownable component gets a chance to release
// its resources even if an earlier one failed.
func (c *Container) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(c.order) - 1; i >= 0; i-- {
		name := c.order[i]
		inst, ok := c.instances[name]
		if !ok {
			continue
		}
		if s, ok := inst.(Shutdownable); ok {
			if err := shutdownOne(ctx, name, s); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &ShutdownErrors{Errors: errs}
}

func shutdownOne(ctx context.Context, name string, s Shutdownable) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("container: panic shutting down %q: %v", name, r)
		}
	}()
	if shutErr := s.Shutdown(ctx); shutErr != nil {
		return fmt.Errorf("container: shutting down %q: %w", name, shutErr)
	}
	return nil
}

// ShutdownErrors aggregates every error raised while shutting down a
// Container's components.
type ShutdownErrors struct {
	Errors []error
}

func (e *ShutdownErrors) Error() string {
	return fmt.Sprintf("container: %d component(s) failed to shut down cleanly", len(e.Errors))
}

func (e *ShutdownErrors) Unwrap() []error { return e.Errors }
