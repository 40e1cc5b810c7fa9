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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriggerNextFixedRate(t *testing.T) {
	trig := FixedRate(10 * time.Second)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, start.Add(10*time.Second), trig.next(start))
}

func TestTriggerNextFixedDelay(t *testing.T) {
	trig := FixedDelay(5 * time.Second)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, start.Add(5*time.Second), trig.next(start))
}

func TestTriggerNextCronWeekdayMorningAcrossDST(t *testing.T) {
	trig, err := Cron("0 0 9 * * MON-FRI", "America/New_York")
	require.NoError(t, err)

	// Sunday 2024-06-02 23:00 UTC is evaluated in America/New_York (EDT,
	// UTC-4 in June); the next weekday 9am New York slot is Monday
	// 2024-06-03 09:00 America/New_York == 13:00 UTC.
	after := time.Date(2024, 6, 2, 23, 0, 0, 0, time.UTC)
	got := trig.next(after)

	want := time.Date(2024, 6, 3, 13, 0, 0, 0, time.UTC)
	assert.True(t, got.Equal(want), "got %s, want %s", got.UTC(), want)
}
