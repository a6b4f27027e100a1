// Seed dataset. Used when no state document exists, when the stored document
// fails to parse, and on explicit demo reset. There is no signup flow, so the
// seed must carry known credentials for both roles.
package store

import (
	"time"

	"github.com/avissapr/onboardbox/internal/models"
)

// Seed credentials for demo logins, one account per role.
const (
	SeedAdminEmail    = "admin@onboardbox.io"
	SeedAdminPassword = "admin123"
	SeedUserEmail     = "maya@onboardbox.io"
	SeedUserPassword  = "welcome1"
)

// SeedState builds the fixed initial AppState: one admin, one staff user,
// one sample onboarding task with two pages of representative sections, an
// assignment of that task to the staff user, and a pair of task groups:
// one open, one time-locked.
func SeedState(newID func() string) models.AppState {
	adminID := newID()
	userID := newID()

	taskID := newID()
	page1ID := newID()
	page2ID := newID()
	welcomeSectionID := newID()
	videoSectionID := newID()
	quizSectionID := newID()
	optA := newID()
	optB := newID()
	essaySectionID := newID()
	assignmentID := newID()

	createdAt := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	correct := optA
	unlockAfter := 7

	return models.AppState{
		Users: []models.User{
			{
				ID:       adminID,
				Name:     "Avery Admin",
				Email:    SeedAdminEmail,
				Role:     models.RoleAdmin,
				Password: SeedAdminPassword,
				Position: "People Operations Lead",
			},
			{
				ID:         userID,
				Name:       "Maya Tan",
				Email:      SeedUserEmail,
				Role:       models.RoleUser,
				Password:   SeedUserPassword,
				JoinDate:   "2025-01-06",
				Department: "Engineering",
				Position:   "Software Engineer",
				Phone:      "+1 555 0100",
			},
		},
		Tasks: []models.Task{
			{
				ID:                 taskID,
				Title:              "Welcome to the Team",
				CreatedByID:        adminID,
				IncludeOpeningPage: true,
				OpeningCaption:     "Everything you need for day one.",
				CreatedAt:          createdAt,
				UpdatedAt:          createdAt,
			},
		},
		Pages: []models.Page{
			{ID: page1ID, TaskID: taskID, Index: 0, Title: "Getting Started"},
			{ID: page2ID, TaskID: taskID, Index: 1, Title: "Check Your Knowledge"},
		},
		Sections: []models.Section{
			{
				ID:         welcomeSectionID,
				PageID:     page1ID,
				Index:      0,
				Type:       models.SectionTextBox,
				ColorTheme: models.ThemePrimaryTint,
				Data:       models.TextBoxData{Content: "<p>Welcome aboard! Work through the pages below at your own pace.</p>"},
			},
			{
				ID:         videoSectionID,
				PageID:     page1ID,
				Index:      1,
				Type:       models.SectionYouTube,
				ColorTheme: models.ThemeDefault,
				Data:       models.YouTubeData{URL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
			},
			{
				ID:         quizSectionID,
				PageID:     page2ID,
				Index:      0,
				Type:       models.SectionMultipleChoice,
				ColorTheme: models.ThemeDefault,
				Required:   true,
				Data: models.MultipleChoiceData{
					Question: "Where do you find the employee handbook?",
					Options: []models.ChoiceOption{
						{ID: optA, Label: "The company intranet"},
						{ID: optB, Label: "Printed in the kitchen"},
					},
					CorrectOptionID: &correct,
				},
			},
			{
				ID:         essaySectionID,
				PageID:     page2ID,
				Index:      1,
				Type:       models.SectionEssay,
				ColorTheme: models.ThemeAccentTint,
				Required:   true,
				Data: models.EssayData{
					Prompt:      "What are you most excited to work on?",
					Placeholder: "Write your answer here...",
				},
			},
		},
		Assignments: []models.Assignment{
			{
				ID:        assignmentID,
				UserID:    userID,
				TaskID:    taskID,
				Status:    models.StatusNotStarted,
				CreatedAt: createdAt,
				UpdatedAt: createdAt,
			},
		},
		Answers: []models.Answer{},
		UserTaskGroups: []models.UserTaskGroups{
			{
				UserID: userID,
				Groups: []models.TaskGroup{
					{
						ID:      newID(),
						Name:    "Your First Day",
						TaskIDs: []string{taskID},
					},
					{
						ID:              newID(),
						Name:            "Your First Week",
						TaskIDs:         []string{},
						Locked:          true,
						UnlockAfterDays: &unlockAfter,
					},
				},
			},
		},
	}
}
