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

// Package scheduler runs recurring tasks on fixed-rate, fixed-delay, or
// cron triggers, one dedicated goroutine per task. Every task carries an
// at-most-one-execution-in-flight guarantee: an overrun run is skipped,
// not queued, and the skip is counted in that task's Stats.
//
// Tasks are discovered the same way controllers are discovered by the
// route registry: a component registered in the container that implements
// TaskProvider contributes every Spec its ScheduledTasks method returns.
package scheduler
