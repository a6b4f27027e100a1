// Package services provides the business logic layer for the OnboardBox
// application. This file implements the lock/progress evaluator: pure
// functions over already-loaded state, with no I/O and no store access.
package services

import (
	"math"
	"time"

	"github.com/avissapr/onboardbox/internal/models"
)

// dateLayouts are the accepted join-date formats. Seed and admin input use
// the date-only form; full timestamps are tolerated for imported data.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// DaysSince returns the number of whole days elapsed since the given ISO
// date, measured in calendar time against the wall clock. The result is
// negative for future dates; callers treat that as "not yet elapsed".
//
// An unparseable date yields 0, which keeps a malformed join date from
// accidentally unlocking time-gated groups.
func DaysSince(dateStr string) int {
	return DaysSinceAt(dateStr, time.Now())
}

// DaysSinceAt is DaysSince evaluated at an explicit instant.
func DaysSinceAt(dateStr string, now time.Time) int {
	var d time.Time
	var err error
	for _, layout := range dateLayouts {
		d, err = time.Parse(layout, dateStr)
		if err == nil {
			break
		}
	}
	if err != nil {
		return 0
	}
	return int(math.Floor(now.Sub(d).Hours() / 24))
}

// IsGroupLocked determines whether a task group is effectively locked for a
// given user right now.
//
// Rules:
//   - group.Locked false: never locked.
//   - group.Locked true and UnlockAfterDays set: unlocked once the user's
//     join date is at least UnlockAfterDays days in the past.
//   - group.Locked true and UnlockAfterDays nil: locked until an admin
//     clears the flag manually, regardless of elapsed time.
//
// A user without a join date cannot auto-unlock anything.
func IsGroupLocked(group models.TaskGroup, user models.User) bool {
	return IsGroupLockedAt(group, user, time.Now())
}

// IsGroupLockedAt is IsGroupLocked evaluated at an explicit instant.
func IsGroupLockedAt(group models.TaskGroup, user models.User, now time.Time) bool {
	if !group.Locked {
		return false
	}
	if group.UnlockAfterDays != nil && user.JoinDate != "" {
		if DaysSinceAt(user.JoinDate, now) >= *group.UnlockAfterDays {
			return false
		}
	}
	return true
}

// Progress computes a user's onboarding completion percentage from their
// assignments: round(100 * completed / total), 0 when nothing is assigned.
// There is no partial credit for in-progress work.
func Progress(assignments []models.Assignment) int {
	total := len(assignments)
	if total == 0 {
		return 0
	}
	completed := 0
	for _, a := range assignments {
		if a.Status == models.StatusCompleted {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
