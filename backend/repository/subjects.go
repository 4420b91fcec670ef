package repository

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"quizmaster/backend/models"
)

func ListSubjects(db *gorm.DB) ([]models.Subject, error) {
	subjects := []models.Subject{}
	if err := db.Order("id").Find(&subjects).Error; err != nil {
		return nil, err
	}
	return subjects, nil
}

func GetSubject(db *gorm.DB, id uint) (*models.Subject, error) {
	var subject models.Subject
	if err := db.First(&subject, id).Error; err != nil {
		return nil, translate(err)
	}
	return &subject, nil
}

// SubjectNameTaken reports whether another subject already uses name,
// ignoring case. excludeID skips the subject being renamed.
func SubjectNameTaken(db *gorm.DB, name string, excludeID uint) (bool, error) {
	var count int64
	q := db.Model(&models.Subject{}).Where("LOWER(name) = ?", strings.ToLower(name))
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func CreateSubject(db *gorm.DB, subject *models.Subject) error {
	return translate(db.Omit(clause.Associations).Create(subject).Error)
}

func UpdateSubject(db *gorm.DB, subject *models.Subject) error {
	return translate(db.Omit(clause.Associations).Save(subject).Error)
}

// DeleteSubjectCascade removes the subject with its chapters, quizzes,
// questions and the scores recorded against those quizzes.
func DeleteSubjectCascade(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := GetSubject(tx, id); err != nil {
			return err
		}

		var chapterIDs []uint
		if err := tx.Model(&models.Chapter{}).Where("subject_id = ?", id).Pluck("id", &chapterIDs).Error; err != nil {
			return err
		}
		if err := deleteChapters(tx, chapterIDs); err != nil {
			return err
		}

		return tx.Delete(&models.Subject{}, id).Error
	})
}

func deleteChapters(tx *gorm.DB, chapterIDs []uint) error {
	if len(chapterIDs) == 0 {
		return nil
	}

	var quizIDs []uint
	if err := tx.Model(&models.Quiz{}).Where("chapter_id IN ?", chapterIDs).Pluck("id", &quizIDs).Error; err != nil {
		return err
	}
	if err := deleteQuizzes(tx, quizIDs); err != nil {
		return err
	}

	return tx.Where("id IN ?", chapterIDs).Delete(&models.Chapter{}).Error
}

func deleteQuizzes(tx *gorm.DB, quizIDs []uint) error {
	if len(quizIDs) == 0 {
		return nil
	}

	if err := tx.Where("quiz_id IN ?", quizIDs).Delete(&models.Score{}).Error; err != nil {
		return err
	}
	if err := tx.Where("quiz_id IN ?", quizIDs).Delete(&models.Question{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", quizIDs).Delete(&models.Quiz{}).Error
}
