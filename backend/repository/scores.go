package repository

import (
	"gorm.io/gorm"

	"quizmaster/backend/models"
)

type ScoreFilter struct {
	UserID uint
	QuizID uint
}

func CreateScore(db *gorm.DB, score *models.Score) error {
	return translate(db.Omit("Quiz", "User").Create(score).Error)
}

// ListScores returns scores newest first with their quiz and its questions
// preloaded, so percentages can fall back to the summed question marks.
func ListScores(db *gorm.DB, filter ScoreFilter) ([]models.Score, error) {
	scores := []models.Score{}
	q := db.Preload("Quiz.Questions").Order("time_stamp_of_attempt DESC, id DESC")
	if filter.UserID != 0 {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.QuizID != 0 {
		q = q.Where("quiz_id = ?", filter.QuizID)
	}
	if err := q.Find(&scores).Error; err != nil {
		return nil, err
	}
	return scores, nil
}
