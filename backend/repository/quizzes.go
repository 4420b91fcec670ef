package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"quizmaster/backend/models"
)

// ListQuizzes returns all quizzes, or only those of chapterID when it is non-zero.
func ListQuizzes(db *gorm.DB, chapterID uint) ([]models.Quiz, error) {
	quizzes := []models.Quiz{}
	q := db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	}).Order("id")
	if chapterID != 0 {
		q = q.Where("chapter_id = ?", chapterID)
	}
	if err := q.Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func GetQuiz(db *gorm.DB, id uint) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := db.First(&quiz, id).Error; err != nil {
		return nil, translate(err)
	}
	return &quiz, nil
}

// GetQuizWithQuestions loads the quiz and its questions ordered by id.
func GetQuizWithQuestions(db *gorm.DB, id uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	}).First(&quiz, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &quiz, nil
}

func CreateQuiz(db *gorm.DB, quiz *models.Quiz) error {
	return translate(db.Omit(clause.Associations).Create(quiz).Error)
}

func UpdateQuiz(db *gorm.DB, quiz *models.Quiz) error {
	return translate(db.Omit(clause.Associations).Save(quiz).Error)
}

func DeleteQuizCascade(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := GetQuiz(tx, id); err != nil {
			return err
		}
		return deleteQuizzes(tx, []uint{id})
	})
}
