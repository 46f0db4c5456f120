package server

import (
	"context"
	"time"

	"trivia-api/internal/config"
	"trivia-api/internal/handler"
	"trivia-api/internal/logger"
	"trivia-api/internal/metrics"
	"trivia-api/internal/middleware"
	"trivia-api/internal/service"
	"trivia-api/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck reports whether a dependency is usable.
type HealthCheck func(ctx context.Context) error

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Questions service.QuestionService
	Quiz      service.QuizService
	Metrics   *metrics.Metrics
	Gatherer  prometheus.Gatherer
	Health    map[string]HealthCheck
}

// NewApp builds the fiber application with middleware and routes.
func NewApp(cfg *config.Config, deps Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "trivia-api",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowOrigins,
		AllowHeaders: "Content-Type, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, OPTIONS",
	}))
	app.Use(middleware.Metrics(deps.Metrics))

	validator := validation.NewValidator()
	questionHandler := handler.NewQuestionHandler(deps.Questions, validator)
	quizHandler := handler.NewQuizHandler(deps.Quiz, validator)

	app.Get("/categories", questionHandler.GetCategories)
	app.Get("/categories/:id/questions", questionHandler.GetCategoryQuestions)
	app.Get("/questions", questionHandler.GetQuestions)
	app.Post("/questions", questionHandler.CreateOrSearchQuestions)
	app.Delete("/questions/:id", questionHandler.DeleteQuestion)
	app.Post("/quizzes", quizHandler.NextQuestion)

	app.Get("/healthz", healthHandler(deps.Health))
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}
	app.Get("/swagger/*", swagger.HandlerDefault)

	return app
}

func healthHandler(checks map[string]HealthCheck) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
		defer cancel()

		status := fiber.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				logger.Get().Warn("health check failed", zap.String("check", name), zap.Error(err))
				results[name] = err.Error()
				status = fiber.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}

		return c.Status(status).JSON(fiber.Map{
			"success": status == fiber.StatusOK,
			"checks":  results,
		})
	}
}
