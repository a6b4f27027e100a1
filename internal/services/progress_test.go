package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/avissapr/onboardbox/internal/models"
	"github.com/avissapr/onboardbox/internal/services"
)

// noon pins the evaluation instant for every time-dependent case.
var noon = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func TestDaysSinceAt(t *testing.T) {
	tests := []struct {
		name string
		date string
		want int
	}{
		{"same day", "2025-03-10", 0},
		{"one day ago", "2025-03-09", 1},
		{"a week ago", "2025-03-03", 7},
		{"partial days floor", "2025-03-08", 2},
		{"future date is negative", "2025-03-12", -2},
		{"RFC3339 timestamp accepted", "2025-03-03T00:00:00Z", 7},
		{"unparseable yields zero", "next monday", 0},
		{"empty yields zero", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, services.DaysSinceAt(tt.date, noon))
		})
	}
}

func TestIsGroupLockedAt(t *testing.T) {
	seven := 7
	zero := 0

	tests := []struct {
		name     string
		group    models.TaskGroup
		joinDate string
		want     bool
	}{
		{
			name:  "unlocked group is never locked",
			group: models.TaskGroup{Locked: false, UnlockAfterDays: &seven},
			want:  false,
		},
		{
			name:     "locked until the threshold day",
			group:    models.TaskGroup{Locked: true, UnlockAfterDays: &seven},
			joinDate: "2025-03-04", // 6 days before noon
			want:     true,
		},
		{
			name:     "unlocks exactly on the threshold day",
			group:    models.TaskGroup{Locked: true, UnlockAfterDays: &seven},
			joinDate: "2025-03-03", // exactly 7 days
			want:     false,
		},
		{
			name:     "stays unlocked past the threshold",
			group:    models.TaskGroup{Locked: true, UnlockAfterDays: &seven},
			joinDate: "2025-02-01",
			want:     false,
		},
		{
			name:     "zero-day threshold unlocks immediately",
			group:    models.TaskGroup{Locked: true, UnlockAfterDays: &zero},
			joinDate: "2025-03-10",
			want:     false,
		},
		{
			name:     "no threshold means manual unlock only",
			group:    models.TaskGroup{Locked: true},
			joinDate: "2020-01-01",
			want:     true,
		},
		{
			name:  "missing join date cannot auto-unlock",
			group: models.TaskGroup{Locked: true, UnlockAfterDays: &seven},
			want:  true,
		},
		{
			name:     "malformed join date cannot auto-unlock",
			group:    models.TaskGroup{Locked: true, UnlockAfterDays: &seven},
			joinDate: "sometime in 2020",
			want:     true,
		},
		{
			name:     "future join date cannot auto-unlock",
			group:    models.TaskGroup{Locked: true, UnlockAfterDays: &seven},
			joinDate: "2025-04-01",
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := models.User{JoinDate: tt.joinDate}

			assert.Equal(t, tt.want, services.IsGroupLockedAt(tt.group, user, noon))
		})
	}
}

func TestProgress(t *testing.T) {
	done := func() models.Assignment { return models.Assignment{Status: models.StatusCompleted} }
	open := func() models.Assignment { return models.Assignment{Status: models.StatusNotStarted} }
	busy := func() models.Assignment { return models.Assignment{Status: models.StatusInProgress} }

	tests := []struct {
		name        string
		assignments []models.Assignment
		want        int
	}{
		{"no assignments", nil, 0},
		{"nothing done", []models.Assignment{open(), open()}, 0},
		{"one of four", []models.Assignment{done(), open(), open(), open()}, 25},
		{"in-progress earns no credit", []models.Assignment{done(), busy(), busy()}, 33},
		{"two of three rounds up", []models.Assignment{done(), done(), open()}, 67},
		{"all done", []models.Assignment{done(), done()}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, services.Progress(tt.assignments))
		})
	}
}
