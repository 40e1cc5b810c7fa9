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
	"fmt"
	"net/http"
	"strings"
)

// DuplicateDescriptorError is returned when two descriptors register the
// same Name within the same Builder.
type DuplicateDescriptorError struct {
	Name string
}

func (e *DuplicateDescriptorError) Error() string {
	return fmt.Sprintf("container: duplicate component name %q", e.Name)
}

// HTTPStatus implements the error taxonomy's ErrorType interface.
func (e *DuplicateDescriptorError) HTTPStatus() int { return http.StatusInternalServerError }

// CircularDependencyError is returned by Resolve when the declared
// dependency graph contains a cycle. Cycle names the full path, starting
// and ending on the same component name.
type CircularDependencyError struct {
	Cycle []string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("container: circular dependency: %s", strings.Join(e.Cycle, " -> "))
}

func (e *CircularDependencyError) HTTPStatus() int { return http.StatusInternalServerError }

func (e *CircularDependencyError) Details() any {
	return map[string]any{"cycle": e.Cycle}
}

// AmbiguousDependencyError is returned when a DependencySpec with no
// NameOverride matches more than one active descriptor by declared type.
type AmbiguousDependencyError struct {
	Consumer   string
	Param      string
	Type       string
	Candidates []string
}

func (e *AmbiguousDependencyError) Error() string {
	return fmt.Sprintf(
		"container: ambiguous dependency %q (type %s) required by %q matches %d candidates: %s",
		e.Param, e.Type, e.Consumer, len(e.Candidates), strings.Join(e.Candidates, ", "),
	)
}

func (e *AmbiguousDependencyError) HTTPStatus() int { return http.StatusInternalServerError }

func (e *AmbiguousDependencyError) Details() any {
	return map[string]any{
		"consumer":   e.Consumer,
		"param":      e.Param,
		"type":       e.Type,
		"candidates": e.Candidates,
	}
}

// UnresolvedDependencyError is returned when a required DependencySpec
// matches no active descriptor and carries no Default.
type UnresolvedDependencyError struct {
	Consumer string
	Param    string
	Type     string
}

func (e *UnresolvedDependencyError) Error() string {
	return fmt.Sprintf("container: unresolved dependency %q (type %s) required by %q", e.Param, e.Type, e.Consumer)
}

func (e *UnresolvedDependencyError) HTTPStatus() int { return http.StatusInternalServerError }

// UnknownComponentError is returned when a lookup by name finds no active
// descriptor.
type UnknownComponentError struct {
	Name string
}

func (e *UnknownComponentError) Error() string {
	return fmt.Sprintf("container: unknown component %q", e.Name)
}

func (e *UnknownComponentError) HTTPStatus() int { return http.StatusNotFound }

// FrozenContainerError is returned when Register is called after the
// container has resolved its graph.
type FrozenContainerError struct{}

func (e *FrozenContainerError) Error() string {
	return "container: cannot register components after resolution; container is frozen"
}

func (e *FrozenContainerError) HTTPStatus() int { return http.StatusInternalServerError }
