package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var scheduleStart = time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC)

func TestNewIngestSchedule_DueImmediately(t *testing.T) {
	s := NewIngestSchedule(24*time.Hour, scheduleStart)

	assert.True(t, s.Enabled)
	assert.True(t, s.Due(scheduleStart))
	assert.False(t, s.Due(scheduleStart.Add(-time.Second)))
}

func TestIngestSchedule_Due(t *testing.T) {
	tests := []struct {
		name     string
		schedule IngestSchedule
		want     bool
	}{
		{"zero next run", IngestSchedule{Enabled: true}, true},
		{"past", IngestSchedule{Enabled: true, NextRun: scheduleStart.Add(-time.Minute)}, true},
		{"exactly now", IngestSchedule{Enabled: true, NextRun: scheduleStart}, true},
		{"future", IngestSchedule{Enabled: true, NextRun: scheduleStart.Add(time.Minute)}, false},
		{"disabled", IngestSchedule{NextRun: scheduleStart.Add(-time.Hour)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.schedule.Due(scheduleStart))
		})
	}
}

func TestIngestSchedule_SetInterval(t *testing.T) {
	s := NewIngestSchedule(24*time.Hour, scheduleStart)
	s.SetInterval(6 * time.Hour)
	assert.Equal(t, 6*time.Hour, s.Interval)
	assert.Equal(t, scheduleStart, s.NextRun, "never-run schedule stays due")

	s.LastRun = scheduleStart
	s.SetInterval(12 * time.Hour)
	assert.Equal(t, scheduleStart.Add(12*time.Hour), s.NextRun)
}

func TestIngestSchedule_Complete(t *testing.T) {
	s := NewIngestSchedule(time.Hour, scheduleStart)
	ended := scheduleStart.Add(10 * time.Minute)

	s.Complete(ScheduledRun{StartedAt: scheduleStart, EndedAt: ended})
	assert.Equal(t, scheduleStart, s.LastRun)
	assert.Equal(t, ended.Add(time.Hour), s.NextRun)
	assert.Equal(t, ended, s.LastSuccess)
	assert.Empty(t, s.LastError)

	later := ended.Add(2 * time.Hour)
	s.Complete(ScheduledRun{StartedAt: later, EndedAt: later.Add(time.Minute), Error: "catalog down"})
	assert.Equal(t, "catalog down", s.LastError)
	assert.Equal(t, ended, s.LastSuccess, "failure keeps last success")
}

func TestNewScheduledRun(t *testing.T) {
	date := TruncateDate(scheduleStart)
	ended := scheduleStart.Add(time.Minute)
	run := &IngestRun{
		ID:        "run-1",
		Total:     3,
		Processed: 2,
		Failures:  []*IngestError{{Slug: "x"}},
	}

	r := NewScheduledRun(date, scheduleStart, ended, run, nil)
	assert.Equal(t, "run-1", r.RunID)
	assert.Equal(t, 3, r.Total)
	assert.Equal(t, 2, r.Processed)
	assert.Equal(t, 1, r.Failed)
	assert.True(t, r.Succeeded())
	assert.Equal(t, time.Minute, r.Duration())

	failed := NewScheduledRun(date, scheduleStart, ended, nil, errors.New("boom"))
	assert.False(t, failed.Succeeded())
	assert.Equal(t, "boom", failed.Error)
	assert.Empty(t, failed.RunID)
}
