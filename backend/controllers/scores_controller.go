package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"quizmaster/backend/middleware"
	"quizmaster/backend/models"
	"quizmaster/backend/repository"
)

type ScoresController struct {
	DB *gorm.DB
}

func NewScoresController(db *gorm.DB) *ScoresController {
	return &ScoresController{DB: db}
}

func scoreView(s *models.Score) fiber.Map {
	view := fiber.Map{
		"id":                    s.ID,
		"user_id":               s.UserID,
		"quiz_id":               s.QuizID,
		"time_stamp_of_attempt": s.TimeStampOfAttempt,
		"total_scored":          s.TotalScored,
		"total_time_taken":      s.TotalTimeTaken,
		"percentage":            0.0,
	}
	if s.Quiz != nil {
		view["quiz_name"] = s.Quiz.Name
		total := s.Quiz.EffectiveTotalMarks()
		view["percentage"] = s.Percentage(&total)
	}
	return view
}

func (sc *ScoresController) renderScores(c *fiber.Ctx, filter repository.ScoreFilter) error {
	scores, err := repository.ListScores(sc.DB.WithContext(c.UserContext()), filter)
	if err != nil {
		return err
	}

	result := make([]fiber.Map, 0, len(scores))
	for i := range scores {
		result = append(result, scoreView(&scores[i]))
	}
	return c.JSON(result)
}

// GetScores lists attempts, filtered by ?user_id= and ?quiz_id= when given.
func (sc *ScoresController) GetScores(c *fiber.Ctx) error {
	userID, err := queryID(c, "user_id")
	if err != nil {
		return err
	}
	quizID, err := queryID(c, "quiz_id")
	if err != nil {
		return err
	}
	return sc.renderScores(c, repository.ScoreFilter{UserID: userID, QuizID: quizID})
}

// GetMyScores lists the caller's own attempts.
func (sc *ScoresController) GetMyScores(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	}
	return sc.renderScores(c, repository.ScoreFilter{UserID: identity.UserID})
}
