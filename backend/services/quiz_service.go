package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"gorm.io/gorm"

	"quizmaster/backend/config"
	"quizmaster/backend/models"
	"quizmaster/backend/repository"
)

var (
	ErrNoAnswers      = errors.New("no answers provided")
	ErrNegativeTime   = errors.New("time_taken must not be negative")
	ErrQuizNotFound   = errors.New("quiz not found")
	ErrQuizNoQuestion = errors.New("no questions found for this quiz")
)

type QuizService struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Logger *log.Logger
}

func NewQuizService(db *gorm.DB, cfg *config.Config, logger *log.Logger) *QuizService {
	return &QuizService{DB: db, Cfg: cfg, Logger: logger}
}

type SubmitInput struct {
	// question id (as string) -> chosen option
	Answers   map[string]interface{} `json:"answers"`
	TimeTaken int                    `json:"time_taken"`
}

type SubmitResult struct {
	ScoreID        uint `json:"score_id"`
	Score          int  `json:"score"`
	TotalQuestions int  `json:"total_questions"`
	TimeTaken      int  `json:"time_taken"`
}

// ScoreAnswers compares each answered question with its correct option.
// Flat mode awards one point per match, marks mode awards the question's marks.
// Questions without an answer score nothing.
func ScoreAnswers(questions []models.Question, answers map[string]interface{}, mode string) int {
	score := 0
	for _, q := range questions {
		answer, ok := answers[strconv.FormatUint(uint64(q.ID), 10)]
		if !ok || answer == nil {
			continue
		}
		if fmt.Sprint(answer) != q.CorrectOption {
			continue
		}
		if mode == config.ScoringMarks {
			score += q.Marks
		} else {
			score++
		}
	}
	return score
}

// SubmitQuiz scores the answers of userID for quizID and records the attempt.
func (s *QuizService) SubmitQuiz(ctx context.Context, quizID, userID uint, in SubmitInput) (*SubmitResult, error) {
	if len(in.Answers) == 0 {
		return nil, ErrNoAnswers
	}
	if in.TimeTaken < 0 {
		return nil, ErrNegativeTime
	}

	var result SubmitResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		quiz, err := repository.GetQuizWithQuestions(tx, quizID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrQuizNotFound
			}
			return err
		}
		if len(quiz.Questions) == 0 {
			return ErrQuizNoQuestion
		}

		score := &models.Score{
			QuizID:             quiz.ID,
			UserID:             userID,
			TimeStampOfAttempt: time.Now().UTC(),
			TotalScored:        ScoreAnswers(quiz.Questions, in.Answers, s.Cfg.ScoringMode),
			TotalTimeTaken:     in.TimeTaken,
		}
		if err := repository.CreateScore(tx, score); err != nil {
			return err
		}

		result = SubmitResult{
			ScoreID:        score.ID,
			Score:          score.TotalScored,
			TotalQuestions: len(quiz.Questions),
			TimeTaken:      in.TimeTaken,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Printf("User %d scored %d/%d on quiz %d", userID, result.Score, result.TotalQuestions, quizID)
	return &result, nil
}
