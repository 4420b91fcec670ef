package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"quizmaster/backend/middleware"
	"quizmaster/backend/models"
	"quizmaster/backend/repository"
	"quizmaster/backend/services"
)

const (
	defaultTimeLimit  = 30
	defaultTotalMarks = 100
)

type QuizzesController struct {
	DB      *gorm.DB
	Quizzes *services.QuizService
}

func NewQuizzesController(db *gorm.DB, quizzes *services.QuizService) *QuizzesController {
	return &QuizzesController{DB: db, Quizzes: quizzes}
}

type createQuizRequest struct {
	ChapterID       uint   `json:"chapter_id" validate:"required"`
	Name            string `json:"name" validate:"required,max=100"`
	Description     string `json:"description" validate:"max=255"`
	DifficultyLevel string `json:"difficulty_level" validate:"omitempty,oneof=Easy Medium Hard"`
	TimeLimit       *int   `json:"time_limit" validate:"omitempty,gte=0"`
	TotalMarks      *int   `json:"total_marks" validate:"omitempty,gte=0"`
	Date            string `json:"date"`
	Duration        string `json:"duration"`
}

type updateQuizRequest struct {
	ChapterID       *uint   `json:"chapter_id"`
	Name            *string `json:"name" validate:"omitempty,max=100"`
	Description     *string `json:"description" validate:"omitempty,max=255"`
	DifficultyLevel *string `json:"difficulty_level" validate:"omitempty,oneof=Easy Medium Hard"`
	TimeLimit       *int    `json:"time_limit" validate:"omitempty,gte=0"`
	TotalMarks      *int    `json:"total_marks" validate:"omitempty,gte=0"`
	Date            *string `json:"date"`
	Duration        *string `json:"duration"`
}

func quizView(q *models.Quiz) fiber.Map {
	return fiber.Map{
		"id":               q.ID,
		"chapter_id":       q.ChapterID,
		"name":             q.Name,
		"description":      q.Description,
		"difficulty_level": q.DifficultyLevel,
		"time_limit":       q.TimeLimit,
		"total_marks":      q.EffectiveTotalMarks(),
		"date":             formatDate(q.Date),
		"duration":         formatClock(q.Duration),
		"question_count":   len(q.Questions),
		"created_at":       q.CreatedAt,
	}
}

// GetQuizzes lists quizzes, filtered by ?chapter_id= when given.
func (qc *QuizzesController) GetQuizzes(c *fiber.Ctx) error {
	chapterID, err := queryID(c, "chapter_id")
	if err != nil {
		return err
	}

	quizzes, err := repository.ListQuizzes(qc.DB.WithContext(c.UserContext()), chapterID)
	if err != nil {
		return err
	}
	if chapterID != 0 && len(quizzes) == 0 {
		return fiber.NewError(fiber.StatusNotFound, "No quizzes found")
	}

	result := make([]fiber.Map, 0, len(quizzes))
	for i := range quizzes {
		result = append(result, quizView(&quizzes[i]))
	}
	return c.JSON(result)
}

// GetQuizDetails returns the quiz with its questions, hiding correct answers.
func (qc *QuizzesController) GetQuizDetails(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	quiz, err := repository.GetQuizWithQuestions(qc.DB.WithContext(c.UserContext()), id)
	if err != nil {
		return httpError(err, "Quiz")
	}

	questions := make([]fiber.Map, 0, len(quiz.Questions))
	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		questions = append(questions, fiber.Map{
			"id":      q.ID,
			"text":    q.QuestionText,
			"options": q.Options(),
			"marks":   q.Marks,
		})
	}

	return c.JSON(fiber.Map{
		"quiz":      quizView(quiz),
		"questions": questions,
	})
}

func (qc *QuizzesController) CreateQuiz(c *fiber.Ctx) error {
	var req createQuizRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	date, err := parseDate("date", req.Date)
	if err != nil {
		return err
	}
	duration, err := parseClock("duration", req.Duration)
	if err != nil {
		return err
	}

	quiz := models.Quiz{
		ChapterID:       req.ChapterID,
		Name:            strings.TrimSpace(req.Name),
		Description:     strings.TrimSpace(req.Description),
		DifficultyLevel: req.DifficultyLevel,
		TimeLimit:       req.TimeLimit,
		TotalMarks:      req.TotalMarks,
		Date:            date,
		Duration:        duration,
	}
	if quiz.DifficultyLevel == "" {
		quiz.DifficultyLevel = models.DifficultyMedium
	}
	if quiz.TimeLimit == nil {
		v := defaultTimeLimit
		quiz.TimeLimit = &v
	}
	if quiz.TotalMarks == nil {
		v := defaultTotalMarks
		quiz.TotalMarks = &v
	}

	err = qc.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if _, err := repository.GetChapter(tx, req.ChapterID); err != nil {
			return httpError(err, "Chapter")
		}
		return repository.CreateQuiz(tx, &quiz)
	})
	if err != nil {
		return httpError(err, "Quiz")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Quiz added successfully",
		"quiz":    quizView(&quiz),
	})
}

func (qc *QuizzesController) UpdateQuiz(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req updateQuizRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	var quiz *models.Quiz
	err = qc.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		quiz, err = repository.GetQuizWithQuestions(tx, id)
		if err != nil {
			return err
		}

		if req.ChapterID != nil && *req.ChapterID != quiz.ChapterID {
			if _, err := repository.GetChapter(tx, *req.ChapterID); err != nil {
				return httpError(err, "Chapter")
			}
			quiz.ChapterID = *req.ChapterID
		}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Quiz name must not be empty")
			}
			quiz.Name = name
		}
		if req.Description != nil {
			quiz.Description = strings.TrimSpace(*req.Description)
		}
		if req.DifficultyLevel != nil && *req.DifficultyLevel != "" {
			quiz.DifficultyLevel = *req.DifficultyLevel
		}
		if req.TimeLimit != nil {
			quiz.TimeLimit = req.TimeLimit
		}
		if req.TotalMarks != nil {
			quiz.TotalMarks = req.TotalMarks
		}
		if req.Date != nil {
			if quiz.Date, err = parseDate("date", *req.Date); err != nil {
				return err
			}
		}
		if req.Duration != nil {
			if quiz.Duration, err = parseClock("duration", *req.Duration); err != nil {
				return err
			}
		}

		return repository.UpdateQuiz(tx, quiz)
	})
	if err != nil {
		return httpError(err, "Quiz")
	}

	return c.JSON(fiber.Map{
		"message": "Quiz updated successfully",
		"quiz":    quizView(quiz),
	})
}

func (qc *QuizzesController) DeleteQuiz(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := repository.DeleteQuizCascade(qc.DB.WithContext(c.UserContext()), id); err != nil {
		return httpError(err, "Quiz")
	}
	return c.JSON(fiber.Map{"message": "Quiz deleted successfully"})
}

// SubmitQuiz scores the caller's answers and records the attempt.
func (qc *QuizzesController) SubmitQuiz(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	identity, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	}

	var input services.SubmitInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Cannot parse JSON")
	}

	result, err := qc.Quizzes.SubmitQuiz(c.UserContext(), id, identity.UserID, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoAnswers):
			return fiber.NewError(fiber.StatusBadRequest, "No answers provided")
		case errors.Is(err, services.ErrNegativeTime):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrQuizNotFound):
			return fiber.NewError(fiber.StatusNotFound, "Quiz not found")
		case errors.Is(err, services.ErrQuizNoQuestion):
			return fiber.NewError(fiber.StatusNotFound, "No questions found for this quiz")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"message":         "Quiz submitted successfully",
		"score_id":        result.ScoreID,
		"score":           result.Score,
		"total_questions": result.TotalQuestions,
		"time_taken":      result.TimeTaken,
	})
}
