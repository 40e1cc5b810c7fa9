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

package app

import (
	"fmt"
	"net/http"

	"github.com/mitsuki-dev/mitsuki/container"
)

// Controller is implemented by any component registered in the container
// with [container.Controller] (descriptor Kind=KindController). Routes
// reports the controller's declarative verb+path table; each entry is
// bound to a method on the same instance the container resolved, so a
// controller's dependencies (services, repositories) are wired exactly
// once at container-resolution time, not re-looked-up per request.
//
// A controller written against this interface trades decorator-discovered
// routes for an explicit, statically typed table built at container
// resolution time. Example:
//
//	type OrdersController struct {
//	    orders *OrdersService
//	}
//
//	func (c *OrdersController) Routes() []app.Route {
//	    return []app.Route{
//	        {Method: http.MethodGet, Path: "/api/orders/:id", Handler: c.get},
//	        {Method: http.MethodPost, Path: "/api/orders", Handler: c.create,
//	            Options: []app.RouteOption{app.WithDoc(openapi.Response(201, OrderResponse{}))}},
//	    }
//	}
type Controller interface {
	Routes() []Route
}

// Route is one declarative entry in a Controller's route table: a verb, a
// path pattern (using the router's :name / *name placeholder syntax), the
// bound handler, and any per-route options (middleware, OpenAPI metadata).
type Route struct {
	Method  string
	Path    string
	Handler HandlerFunc
	Options []RouteOption
}

// RouteConflictError is returned by [App.mountControllers] when two
// controllers (or a controller and a manually registered route) declare
// the same (method, path) pair.
type RouteConflictError struct {
	Method string
	Path   string
}

func (e *RouteConflictError) Error() string {
	return fmt.Sprintf("app: route conflict: %s %s is registered more than once", e.Method, e.Path)
}

func (e *RouteConflictError) HTTPStatus() int { return http.StatusInternalServerError }

// mountControllers is C4's route-table construction step: it discovers
// every active KindController descriptor from the frozen dependency graph
// and registers its declared Routes() through the same registerRoute path
// used by App.GET/POST/etc, so controller routes get identical middleware
// wrapping, OpenAPI registration, and panic recovery as manually
// registered ones.
func (a *App) mountControllers() error {
	instances, err := a.container.ByKind(container.KindController)
	if err != nil {
		return fmt.Errorf("app: resolving controllers: %w", err)
	}

	seen := make(map[string]bool, len(instances))
	for _, inst := range instances {
		ctrl, ok := inst.(Controller)
		if !ok {
			return fmt.Errorf("app: component %T is registered as a controller but does not implement app.Controller", inst)
		}

		for _, rt := range ctrl.Routes() {
			key := rt.Method + " " + rt.Path
			if seen[key] {
				return &RouteConflictError{Method: rt.Method, Path: rt.Path}
			}
			seen[key] = true

			a.registerRoute(rt.Method, rt.Path, rt.Handler, rt.Options...)
		}
	}

	return nil
}
