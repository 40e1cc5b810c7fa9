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
	"context"
	"fmt"
	"log/slog"

	"github.com/mitsuki-dev/mitsuki/container"
	"github.com/mitsuki-dev/mitsuki/router"
	"github.com/mitsuki-dev/mitsuki/scheduler"
)

// SchedulerOption configures the background task scheduler built from
// KindScheduled container descriptors.
type SchedulerOption func(*schedulerSettings)

// schedulerSettings holds scheduler configuration gathered from
// SchedulerOption values applied in WithScheduler.
type schedulerSettings struct {
	enabled       bool
	statsEnabled  bool
	statsPath     string
	statsHandlers []scheduler.StatsHandlerOption
}

func defaultSchedulerSettings() *schedulerSettings {
	return &schedulerSettings{
		enabled:   true,
		statsPath: scheduler.DefaultStatsPath,
	}
}

// WithScheduler configures the scheduler built from components registered
// with [container.Scheduled]. Scheduled components run automatically once
// the server starts; WithScheduler is only needed to enable the stats
// endpoint or change its mount path.
//
// Example:
//
//	app.MustNew(
//	    app.WithComponents(container.MustScheduled[*ReportJob]("reports", nil, newReportJob)),
//	    app.WithScheduler(
//	        app.WithSchedulerStats(),
//	    ),
//	)
func WithScheduler(opts ...SchedulerOption) Option {
	return func(c *config) {
		c.schedulerOpts = append(c.schedulerOpts, opts...)
	}
}

// WithSchedulerStats mounts a JSON stats endpoint (default
// scheduler.DefaultStatsPath) reporting per-task run counts, errors, and
// timing, guarded by the given handler options (IP allowlist, rate limit).
func WithSchedulerStats(opts ...scheduler.StatsHandlerOption) SchedulerOption {
	return func(s *schedulerSettings) {
		s.statsEnabled = true
		s.statsHandlers = append(s.statsHandlers, opts...)
	}
}

// WithSchedulerStatsPath overrides the mount path for the stats endpoint.
func WithSchedulerStatsPath(path string) SchedulerOption {
	return func(s *schedulerSettings) {
		s.statsPath = path
	}
}

// buildScheduler is C6's wiring step: it discovers every active
// KindScheduled descriptor from the frozen dependency graph, registers its
// declared tasks, and, if enabled, mounts the stats endpoint. The returned
// Scheduler is not started here; App.startScheduler starts it once the
// server's other startup hooks have run.
func (a *App) buildScheduler(logger *slog.Logger, opts ...SchedulerOption) (*scheduler.Scheduler, error) {
	settings := defaultSchedulerSettings()
	for _, opt := range opts {
		opt(settings)
	}
	a.schedulerSettings = settings

	sch := scheduler.New(logger)

	instances, err := a.container.ByKind(container.KindScheduled)
	if err != nil {
		return nil, fmt.Errorf("app: resolving scheduled tasks: %w", err)
	}

	for _, inst := range instances {
		provider, ok := inst.(scheduler.TaskProvider)
		if !ok {
			return nil, fmt.Errorf("app: component %T is registered as scheduled but does not implement scheduler.TaskProvider", inst)
		}
		if err := sch.RegisterProvider(provider); err != nil {
			return nil, fmt.Errorf("app: registering scheduled tasks: %w", err)
		}
	}

	if settings.statsEnabled {
		handler := scheduler.NewStatsHandler(sch, settings.statsHandlers...)
		a.router.GET(settings.statsPath, func(c *router.Context) {
			handler.ServeHTTP(c.Response, c.Request)
		})
	}

	return sch, nil
}

// startScheduler starts the scheduler once the server is otherwise ready.
// It is a no-op if no scheduler was built or WithScheduler was never
// applied.
func (a *App) startScheduler(ctx context.Context) {
	if a.scheduler == nil || a.schedulerSettings == nil || !a.schedulerSettings.enabled {
		return
	}
	a.scheduler.Start(ctx)
}

// stopScheduler stops the scheduler, waiting a bounded grace period for
// in-flight executions to finish.
func (a *App) stopScheduler(ctx context.Context) {
	if a.scheduler == nil || a.schedulerSettings == nil || !a.schedulerSettings.enabled {
		return
	}
	a.scheduler.Stop()
}

// shutdownContainer runs Shutdownable components in reverse resolution
// order.
func (a *App) shutdownContainer(ctx context.Context) {
	if a.container == nil {
		return
	}
	if err := a.container.Shutdown(ctx); err != nil {
		a.logLifecycleEvent(ctx, slog.LevelWarn, "container shutdown failed", "error", err)
	}
}
