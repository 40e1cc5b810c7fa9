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

package scheduler

import (
	"context"
	"sync/atomic"
	"time"
)

// Target is the work a scheduled task performs on each fire.
type Target func(ctx context.Context) error

// Spec is what a TaskProvider contributes: a task identity, a trigger,
// and the work to run. The Scheduler turns every discovered Spec into a
// running Descriptor.
type Spec struct {
	TaskID  string
	Trigger Trigger
	Target  Target
}

// TaskProvider is implemented by a container component that contributes
// one or more scheduled tasks, symmetric with the route registry's
// controller-discovery Routes() method.
type TaskProvider interface {
	ScheduledTasks() []Spec
}

// Status is the last known execution state of a scheduled task, reported
// in its Snapshot for operational dashboards.
type Status string

const (
	StatusPending Status = "pending" // Registered, waiting for its next fire time.
	StatusRunning Status = "running" // Target is currently executing.
	StatusStopped Status = "stopped" // Scheduler has been stopped.
	StatusError   Status = "error"   // Last execution returned an error or panicked.
)

// Stats tracks one task's execution history. All fields are read
// atomically and safe for concurrent access while the task is running.
type Stats struct {
	runs           atomic.Int64
	errors         atomic.Int64
	skipped        atomic.Int64
	lastStart     atomic.Int64 // UnixNano, 0 if never run
	lastEnd       atomic.Int64
	lastDuration  atomic.Int64 // nanoseconds
	totalDuration atomic.Int64 // nanoseconds, sum over every completed run
	lastErr       atomic.Pointer[string]
	running       atomic.Bool
	status        atomic.Pointer[Status]
}

// Snapshot is an immutable point-in-time view of a Stats.
type Snapshot struct {
	Runs         int64         `json:"runs"`
	Errors       int64         `json:"errors"`
	Skipped      int64         `json:"skipped"`
	LastStart    time.Time     `json:"lastStart,omitzero"`
	LastEnd      time.Time     `json:"lastEnd,omitzero"`
	LastDuration time.Duration `json:"lastDuration"`
	MeanDuration time.Duration `json:"meanDuration"`
	LastError    string        `json:"lastError,omitempty"`
	Running      bool          `json:"running"`
	Status       Status        `json:"status"`
}

func (s *Stats) snapshot() Snapshot {
	runs := s.runs.Load()
	snap := Snapshot{
		Runs:         runs,
		Errors:       s.errors.Load(),
		Skipped:      s.skipped.Load(),
		LastDuration: time.Duration(s.lastDuration.Load()),
		Running:      s.running.Load(),
		Status:       StatusPending,
	}
	if runs > 0 {
		snap.MeanDuration = time.Duration(s.totalDuration.Load() / runs)
	}
	if ns := s.lastStart.Load(); ns != 0 {
		snap.LastStart = time.Unix(0, ns)
	}
	if ns := s.lastEnd.Load(); ns != 0 {
		snap.LastEnd = time.Unix(0, ns)
	}
	if p := s.lastErr.Load(); p != nil {
		snap.LastError = *p
	}
	if p := s.status.Load(); p != nil {
		snap.Status = *p
	}
	return snap
}

func (s *Stats) setStatus(st Status) {
	s.status.Store(&st)
}

// Descriptor is the runtime record for one scheduled task: its identity,
// trigger, target, and accumulated Stats.
type Descriptor struct {
	TaskID  string
	Trigger Trigger
	Target  Target
	Stats   *Stats

	stop chan struct{}
	done chan struct{}
}
