// Package main is the entry point for the OnboardBox application.
// It wires the persisted state store, session management, and all HTTP
// routes, then serves the JSON API any presentation layer renders from.
package main

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/avissapr/onboardbox/internal/config"
	"github.com/avissapr/onboardbox/internal/database"
	"github.com/avissapr/onboardbox/internal/handlers"
	"github.com/avissapr/onboardbox/internal/logger"
	"github.com/avissapr/onboardbox/internal/middleware"
	"github.com/avissapr/onboardbox/internal/security"
	"github.com/avissapr/onboardbox/internal/store"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env, cfg.LogLevel)

	// Open the single-document state store.
	db, err := database.Open(cfg.DataPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open data file")
	}
	defer db.Close()

	st, err := store.New(db, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize state store")
	}

	securityConfig := security.DefaultSecurityConfig()
	validator := security.NewValidationService(securityConfig)

	// Brute-force protection on the login endpoint.
	loginLimiter := security.NewRateLimiter(
		securityConfig.LoginRateLimit, // 5 requests
		12*time.Second,                // per minute (60s / 5 = 12s refill)
	)
	defer loginLimiter.Stop()

	sessions := session.New(session.Config{
		CookieName:     cfg.SessionCookie,
		Expiration:     securityConfig.SessionTimeout,
		CookieHTTPOnly: securityConfig.SessionHTTPOnly,
	})

	app := fiber.New(fiber.Config{
		AppName: "OnboardBox",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			if code >= fiber.StatusInternalServerError {
				log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(recover.New())
	app.Use(middleware.SecureHeaders())
	app.Use(middleware.RequestLogger(log))

	authHandler := handlers.NewAuthHandler(sessions, st, loginLimiter, log)
	adminHandler := handlers.NewAdminHandler(sessions, st, validator, log)
	staffHandler := handlers.NewStaffHandler(sessions, st, validator, log)

	// Public routes
	app.Post("/login", authHandler.Login)
	app.Post("/logout", authHandler.Logout)
	app.Get("/me", middleware.AuthRequired(sessions), authHandler.Me)

	// Admin routes: task builder, users, assignments, task groups
	admin := app.Group("/admin",
		middleware.AuthRequired(sessions),
		middleware.AdminOnly(),
	)
	admin.Get("/tasks", adminHandler.ListTasks)
	admin.Post("/tasks", adminHandler.CreateTask)
	admin.Get("/tasks/:id", adminHandler.GetTask)
	admin.Patch("/tasks/:id", adminHandler.UpdateTask)
	admin.Delete("/tasks/:id", adminHandler.DeleteTask)
	admin.Post("/tasks/:id/pages", adminHandler.CreatePage)
	admin.Delete("/pages/:id", adminHandler.DeletePage)
	admin.Post("/pages/:id/sections", adminHandler.CreateSection)
	admin.Patch("/sections/:id", adminHandler.UpdateSection)
	admin.Delete("/sections/:id", adminHandler.DeleteSection)

	admin.Post("/assignments", adminHandler.AssignTask)
	admin.Delete("/assignments", adminHandler.RemoveAssignment)
	admin.Patch("/assignments/:id/status", adminHandler.UpdateAssignmentStatus)

	admin.Get("/users", adminHandler.ListUsers)
	admin.Post("/users", adminHandler.AddUser)
	admin.Patch("/users/:id", adminHandler.UpdateUser)
	admin.Put("/users/:id/assignments", adminHandler.SetUserAssignments)
	admin.Get("/users/:id/task-groups", adminHandler.GetUserTaskGroups)
	admin.Put("/users/:id/task-groups", adminHandler.SetUserTaskGroups)

	admin.Post("/mode", adminHandler.SetAdminMode)
	admin.Post("/reset", adminHandler.Reset)

	// Staff routes: dashboard, task viewer, answers, profile
	staff := app.Group("/staff", middleware.AuthRequired(sessions))
	staff.Get("/dashboard", staffHandler.Dashboard)
	staff.Get("/tasks", staffHandler.ListTasks)
	staff.Get("/tasks/:id", staffHandler.GetTask)
	staff.Put("/assignments/:id/answers/:sectionId", staffHandler.SaveAnswer)
	staff.Post("/assignments/:id/complete", staffHandler.CompleteTask)
	staff.Get("/profile", staffHandler.Profile)
	staff.Patch("/profile", staffHandler.UpdateProfile)

	log.Info().Str("port", cfg.Port).Str("data", cfg.DataPath).Msg("onboardbox listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
