package repository

import (
	"gorm.io/gorm"

	"quizmaster/backend/models"
)

// ListQuestions returns all questions, or only those of quizID when it is non-zero.
func ListQuestions(db *gorm.DB, quizID uint) ([]models.Question, error) {
	questions := []models.Question{}
	q := db.Order("id")
	if quizID != 0 {
		q = q.Where("quiz_id = ?", quizID)
	}
	if err := q.Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func GetQuestion(db *gorm.DB, id uint) (*models.Question, error) {
	var question models.Question
	if err := db.First(&question, id).Error; err != nil {
		return nil, translate(err)
	}
	return &question, nil
}

func CreateQuestion(db *gorm.DB, question *models.Question) error {
	return translate(db.Create(question).Error)
}

func UpdateQuestion(db *gorm.DB, question *models.Question) error {
	return translate(db.Save(question).Error)
}

func DeleteQuestion(db *gorm.DB, id uint) error {
	res := db.Delete(&models.Question{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
