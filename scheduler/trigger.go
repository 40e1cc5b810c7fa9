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
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	// Loaded so time.LoadLocation resolves IANA zone names even on minimal
	// container images that ship without a system tzdata database.
	_ "time/tzdata"
)

// TriggerKind distinguishes the three trigger shapes a Descriptor can
// declare.
type TriggerKind int

const (
	TriggerFixedRate TriggerKind = iota
	TriggerFixedDelay
	TriggerCron
)

// Trigger describes when a task should run next. Exactly one constructor
// below should be used to build a value; the zero value is invalid.
type Trigger struct {
	kind         TriggerKind
	interval     time.Duration // FixedRate / FixedDelay
	initialDelay time.Duration // FixedRate / FixedDelay, applied only to the first fire
	schedule     cron.Schedule // Cron
	expr         string        // Cron, for diagnostics
	location     *time.Location
}

// TriggerOption configures optional Trigger behavior beyond its base
// interval, applied by FixedRate and FixedDelay.
type TriggerOption func(*Trigger)

// WithInitialDelay delays a FixedRate/FixedDelay trigger's first fire by d,
// measured from Scheduler.Start. Subsequent fires still follow the
// trigger's normal cadence.
func WithInitialDelay(d time.Duration) TriggerOption {
	return func(t *Trigger) {
		t.initialDelay = d
	}
}

// FixedRate runs a task every interval, measured from the start of one
// execution to the start of the next. If an execution overruns the
// interval, the next tick fires immediately and the in-between slot is
// recorded as skipped rather than queued.
func FixedRate(interval time.Duration, opts ...TriggerOption) Trigger {
	t := Trigger{kind: TriggerFixedRate, interval: interval}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// FixedDelay runs a task interval after the previous execution finished,
// so executions never overlap.
func FixedDelay(interval time.Duration, opts ...TriggerOption) Trigger {
	t := Trigger{kind: TriggerFixedDelay, interval: interval}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// Cron runs a task on the schedule described by expr, a standard 6-field
// cron expression (seconds first) or one of the "@yearly"/"@monthly"/
// "@weekly"/"@daily"/"@hourly"/"@every <duration>" macros, evaluated in
// the named IANA timezone. An empty tz means UTC.
func Cron(expr string, tz string) (Trigger, error) {
	loc, err := resolveLocation(tz)
	if err != nil {
		return Trigger{}, fmt.Errorf("scheduler: invalid timezone %q: %w", tz, err)
	}

	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	schedule, err := parser.Parse(expr)
	if err != nil {
		return Trigger{}, fmt.Errorf("scheduler: invalid cron expression %q: %w", expr, err)
	}

	return Trigger{kind: TriggerCron, schedule: schedule, expr: expr, location: loc}, nil
}

// MustCron is Cron, panicking on error. Intended for package-level
// TaskProvider implementations where a malformed expression is a
// programmer error caught in development, not a runtime condition.
func MustCron(expr string, tz string) Trigger {
	t, err := Cron(expr, tz)
	if err != nil {
		panic(err)
	}
	return t
}

func resolveLocation(tz string) (*time.Location, error) {
	if tz == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(tz)
}

// next computes the next fire time after `after`, given the trigger's own
// kind. For FixedRate and FixedDelay, `after` is the last scheduled (not
// actual) fire time; cron ignores `after`'s wall-clock offset within the
// second and evaluates strictly in the trigger's own timezone.
func (t Trigger) next(after time.Time) time.Time {
	switch t.kind {
	case TriggerCron:
		return t.schedule.Next(after.In(t.location))
	default:
		return after.Add(t.interval)
	}
}

// firstFire computes the trigger's first fire time measured from start,
// honoring an initial delay for FixedRate/FixedDelay triggers.
func (t Trigger) firstFire(start time.Time) time.Time {
	switch t.kind {
	case TriggerCron:
		return t.schedule.Next(start.In(t.location))
	default:
		return start.Add(t.initialDelay)
	}
}

func (t Trigger) String() string {
	switch t.kind {
	case TriggerFixedRate:
		return fmt.Sprintf("fixed-rate(%s)", t.interval)
	case TriggerFixedDelay:
		return fmt.Sprintf("fixed-delay(%s)", t.interval)
	case TriggerCron:
		return fmt.Sprintf("cron(%s, %s)", t.expr, t.location)
	default:
		return "invalid-trigger"
	}
}
