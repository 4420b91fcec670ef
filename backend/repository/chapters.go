package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"quizmaster/backend/models"
)

// ListChapters returns all chapters, or only those of subjectID when it is non-zero.
func ListChapters(db *gorm.DB, subjectID uint) ([]models.Chapter, error) {
	chapters := []models.Chapter{}
	q := db.Order("id")
	if subjectID != 0 {
		q = q.Where("subject_id = ?", subjectID)
	}
	if err := q.Find(&chapters).Error; err != nil {
		return nil, err
	}
	return chapters, nil
}

func GetChapter(db *gorm.DB, id uint) (*models.Chapter, error) {
	var chapter models.Chapter
	if err := db.First(&chapter, id).Error; err != nil {
		return nil, translate(err)
	}
	return &chapter, nil
}

func CreateChapter(db *gorm.DB, chapter *models.Chapter) error {
	return translate(db.Omit(clause.Associations).Create(chapter).Error)
}

func UpdateChapter(db *gorm.DB, chapter *models.Chapter) error {
	return translate(db.Omit(clause.Associations).Save(chapter).Error)
}

func DeleteChapterCascade(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := GetChapter(tx, id); err != nil {
			return err
		}
		return deleteChapters(tx, []uint{id})
	})
}
