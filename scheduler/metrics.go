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

import "github.com/prometheus/client_golang/prometheus"

// MetricsCollector exposes a Scheduler's per-task Stats as Prometheus
// gauges/counters. Registering it is optional: a Scheduler works
// perfectly well with no collector attached.
type MetricsCollector struct {
	scheduler *Scheduler

	runs    *prometheus.Desc
	errors  *prometheus.Desc
	skipped *prometheus.Desc
	running *prometheus.Desc
}

// NewMetricsCollector returns a prometheus.Collector reflecting s's
// current Snapshot on every scrape.
func NewMetricsCollector(s *Scheduler) *MetricsCollector {
	labels := []string{"task_id"}
	return &MetricsCollector{
		scheduler: s,
		runs: prometheus.NewDesc(
			"scheduler_task_runs_total", "Total executions started for a scheduled task.", labels, nil,
		),
		errors: prometheus.NewDesc(
			"scheduler_task_errors_total", "Total executions that returned an error or panicked.", labels, nil,
		),
		skipped: prometheus.NewDesc(
			"scheduler_task_skipped_total", "Total ticks skipped because the previous execution was still running.", labels, nil,
		),
		running: prometheus.NewDesc(
			"scheduler_task_running", "Whether the task is currently executing (1) or idle (0).", labels, nil,
		),
	}
}

func (c *MetricsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.runs
	ch <- c.errors
	ch <- c.skipped
	ch <- c.running
}

func (c *MetricsCollector) Collect(ch chan<- prometheus.Metric) {
	for taskID, snap := range c.scheduler.Snapshot() {
		ch <- prometheus.MustNewConstMetric(c.runs, prometheus.CounterValue, float64(snap.Runs), taskID)
		ch <- prometheus.MustNewConstMetric(c.errors, prometheus.CounterValue, float64(snap.Errors), taskID)
		ch <- prometheus.MustNewConstMetric(c.skipped, prometheus.CounterValue, float64(snap.Skipped), taskID)

		running := 0.0
		if snap.Running {
			running = 1.0
		}
		ch <- prometheus.MustNewConstMetric(c.running, prometheus.GaugeValue, running, taskID)
	}
}

var _ prometheus.Collector = (*MetricsCollector)(nil)
