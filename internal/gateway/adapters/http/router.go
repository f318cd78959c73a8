// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	authapi "notesai/internal/auth/ports/api"
	authservices "notesai/internal/auth/ports/services"
	"notesai/internal/gateway/adapters/http/auth"
	"notesai/internal/gateway/adapters/http/middleware"
	"notesai/internal/gateway/adapters/http/notes"
	"notesai/internal/gateway/adapters/http/summary"
	"notesai/internal/gateway/ports/services"
	summaryservices "notesai/internal/summary/ports/services"
)

// Deps содержит зависимости маршрутизатора.
type Deps struct {
	AuthUseCase  authapi.AuthUseCase
	UserUseCase  authapi.UserUseCase
	TokenService authservices.TokenService
	NotesService services.NotesService
	Summarizer   summaryservices.Summarizer
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, deps Deps) {
	authHandler := auth.NewHandler(deps.AuthUseCase, deps.UserUseCase)
	notesHandler := notes.NewHandler(deps.NotesService)
	summaryHandler := summary.NewHandler(deps.Summarizer)

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	requireAuth := middleware.NewAuthMiddleware(deps.TokenService)

	// Генерация саммари (публичный маршрут).
	app.Post("/api/groq/summarize", summaryHandler.Summarize)

	// API версии 1.
	apiV1 := app.Group("/api/v1")

	// Auth routes (публичные).
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/refresh", authHandler.RefreshTokens)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Get("/oauth/:provider", authHandler.OAuthRedirect)
	authRoutes.Post("/oauth/:provider/callback", authHandler.OAuthCallback)

	// Защищенные маршруты.
	userRoutes := apiV1.Group("/user")
	userRoutes.Use(requireAuth)
	userRoutes.Get("/profile", authHandler.GetProfile)

	// Маршруты заметок (требуют авторизации).
	notesRoutes := apiV1.Group("/notes")
	notesRoutes.Use(requireAuth)
	notesRoutes.Post("/", notesHandler.CreateNote)
	notesRoutes.Get("/:note_id", notesHandler.GetNote)
	notesRoutes.Get("/", notesHandler.ListNotes)
	notesRoutes.Patch("/:note_id", notesHandler.UpdateNote)
	notesRoutes.Put("/:note_id", notesHandler.UpdateNote)
	notesRoutes.Delete("/:note_id", notesHandler.DeleteNote)

	// Публичные заметки (аутентификация не требуется).
	apiV1.Get("/public/notes/:note_id", notesHandler.GetPublicNote)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
