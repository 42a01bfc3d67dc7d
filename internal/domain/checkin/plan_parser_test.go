package checkin

import (
	"testing"
	"time"

	"github.com/Pycomet/grindproof-sub001/internal/domain/coach"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlanText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []coach.ParsedTask
	}{
		{
			name: "time range and bare line",
			text: "09:00 - 10:30 write report\nreview PRs",
			want: []coach.ParsedTask{
				{Title: "write report", StartTime: "09:00", EndTime: "10:30"},
				{Title: "review PRs"},
			},
		},
		{
			name: "single time without range",
			text: "14:00 standup",
			want: []coach.ParsedTask{
				{Title: "standup", StartTime: "14:00"},
			},
		},
		{
			name: "bullets and numbering stripped",
			text: "- 9:00 gym\n* read\n3. plan sprint",
			want: []coach.ParsedTask{
				{Title: "gym", StartTime: "09:00"},
				{Title: "read"},
				{Title: "plan sprint"},
			},
		},
		{
			name: "blank lines skipped",
			text: "\n\nship the thing\n\n",
			want: []coach.ParsedTask{
				{Title: "ship the thing"},
			},
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parsePlanText(tt.text)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDueFromTimes(t *testing.T) {
	now := time.Date(2026, time.March, 11, 8, 0, 0, 0, time.UTC)

	due := dueFromTimes(coach.ParsedTask{StartTime: "09:00", EndTime: "10:30"}, now)
	require.NotNil(t, due)
	assert.Equal(t, time.Date(2026, time.March, 11, 10, 30, 0, 0, time.UTC), *due)

	// Without an end time the start time is the deadline.
	due = dueFromTimes(coach.ParsedTask{StartTime: "09:00"}, now)
	require.NotNil(t, due)
	assert.Equal(t, 9, due.Hour())

	assert.Nil(t, dueFromTimes(coach.ParsedTask{}, now))
	assert.Nil(t, dueFromTimes(coach.ParsedTask{StartTime: "not a clock"}, now))
}
