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
	"encoding/json"
	"net"
	"net/http"

	"golang.org/x/time/rate"
)

// DefaultStatsPath is where App mounts the bundled stats endpoint by
// default.
const DefaultStatsPath = "/internal/scheduler/stats"

// StatsHandler serves the Scheduler's Snapshot as JSON. It is guarded
// separately from the rest of the application's routing so it can be
// mounted with its own IP allowlist and rate limiter, since it exposes
// operational detail (error messages, run counts) that shouldn't be
// reachable from arbitrary clients.
type StatsHandler struct {
	scheduler *Scheduler
	allowlist []*net.IPNet
	limiter   *rate.Limiter
}

// StatsHandlerOption configures a StatsHandler.
type StatsHandlerOption func(*StatsHandler)

// WithIPAllowlist restricts the handler to requests whose remote address
// falls inside one of the given CIDR blocks. Calling it with no blocks
// disables the allowlist (the default: open to any caller that can reach
// the endpoint at the network layer).
func WithIPAllowlist(cidrs ...string) StatsHandlerOption {
	return func(h *StatsHandler) {
		for _, c := range cidrs {
			if _, n, err := net.ParseCIDR(c); err == nil {
				h.allowlist = append(h.allowlist, n)
			}
		}
	}
}

// WithRateLimit caps requests per second with the given burst, using a
// token-bucket limiter shared across all callers of the endpoint.
func WithRateLimit(perSecond float64, burst int) StatsHandlerOption {
	return func(h *StatsHandler) {
		h.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// NewStatsHandler returns an http.Handler serving s's Snapshot as JSON.
func NewStatsHandler(s *Scheduler, opts ...StatsHandlerOption) *StatsHandler {
	h := &StatsHandler{scheduler: s}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if len(h.allowlist) > 0 && !h.allowed(r) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	if h.limiter != nil && !h.limiter.Allow() {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.scheduler.Snapshot())
}

func (h *StatsHandler) allowed(r *http.Request) bool {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	for _, n := range h.allowlist {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}
