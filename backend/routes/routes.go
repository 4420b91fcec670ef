package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"quizmaster/backend/config"
	"quizmaster/backend/controllers"
	"quizmaster/backend/middleware"
	"quizmaster/backend/services"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, logger *log.Logger) {
	authService := services.NewAuthService(db, cfg, logger)
	quizService := services.NewQuizService(db, cfg, logger)

	// Health check
	healthController := controllers.NewHealthController(db, logger)
	app.Get("/health", healthController.HealthCheck)

	api := app.Group(cfg.APIPrefix)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(authService)
	adminMiddleware := middleware.AdminMiddleware()
	rateLimiter := middleware.AuthRateLimiter(cfg.AuthRateLimit)

	// Auth routes
	authController := controllers.NewAuthController(authService, logger)
	api.Post("/login", rateLimiter, authController.Login)
	api.Post("/register", rateLimiter, authController.Register)
	api.Post("/logout", authMiddleware, authController.Logout)

	// User routes
	userController := controllers.NewUserController(db)
	api.Get("/profile", authMiddleware, userController.GetProfile)
	api.Put("/profile", authMiddleware, userController.UpdateProfile)

	// Subjects routes
	subjectsController := controllers.NewSubjectsController(db)
	subjects := api.Group("/subjects", authMiddleware)
	subjects.Get("/", subjectsController.GetSubjects)
	subjects.Get("/:id", subjectsController.GetSubject)
	subjects.Post("/", adminMiddleware, subjectsController.CreateSubject)
	subjects.Put("/:id", adminMiddleware, subjectsController.UpdateSubject)
	subjects.Delete("/", adminMiddleware, subjectsController.DeleteSubjectByBody)
	subjects.Delete("/:id", adminMiddleware, subjectsController.DeleteSubject)

	// Chapters routes
	chaptersController := controllers.NewChaptersController(db)
	chapters := api.Group("/chapters", authMiddleware)
	chapters.Get("/", chaptersController.GetChapters)
	chapters.Get("/subject/:subject_id", chaptersController.GetChaptersBySubject)
	chapters.Get("/:id", chaptersController.GetChapter)
	chapters.Post("/", adminMiddleware, chaptersController.CreateChapter)
	chapters.Put("/:id", adminMiddleware, chaptersController.UpdateChapter)
	chapters.Delete("/:id", adminMiddleware, chaptersController.DeleteChapter)

	// Quizzes routes
	quizzesController := controllers.NewQuizzesController(db, quizService)
	questionsController := controllers.NewQuestionsController(db)
	quizzes := api.Group("/quizzes", authMiddleware)
	quizzes.Get("/", quizzesController.GetQuizzes)
	quizzes.Get("/:id/questions", questionsController.GetQuestionsByQuiz)
	quizzes.Post("/:id/submit", quizzesController.SubmitQuiz)
	quizzes.Get("/:id", quizzesController.GetQuizDetails)
	quizzes.Post("/", adminMiddleware, quizzesController.CreateQuiz)
	quizzes.Put("/:id", adminMiddleware, quizzesController.UpdateQuiz)
	quizzes.Delete("/:id", adminMiddleware, quizzesController.DeleteQuiz)

	// Questions routes
	questions := api.Group("/questions", authMiddleware)
	questions.Get("/", questionsController.GetQuestions)
	questions.Get("/:id", questionsController.GetQuestion)
	questions.Post("/", adminMiddleware, questionsController.CreateQuestion)
	questions.Put("/:id", adminMiddleware, questionsController.UpdateQuestion)
	questions.Delete("/:id", adminMiddleware, questionsController.DeleteQuestion)

	// Scores routes
	scoresController := controllers.NewScoresController(db)
	scores := api.Group("/scores", authMiddleware)
	scores.Get("/", scoresController.GetScores)
	scores.Get("/me", scoresController.GetMyScores)
}
