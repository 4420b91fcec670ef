package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"quizmaster/backend/models"
	"quizmaster/backend/repository"
)

type ChaptersController struct {
	DB *gorm.DB
}

func NewChaptersController(db *gorm.DB) *ChaptersController {
	return &ChaptersController{DB: db}
}

type createChapterRequest struct {
	SubjectID   uint   `json:"subject_id" validate:"required"`
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=255"`
}

type updateChapterRequest struct {
	SubjectID   *uint   `json:"subject_id"`
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

// GetChapters lists chapters, filtered by ?subject_id= when given.
func (cc *ChaptersController) GetChapters(c *fiber.Ctx) error {
	subjectID, err := queryID(c, "subject_id")
	if err != nil {
		return err
	}
	return cc.listChapters(c, subjectID)
}

func (cc *ChaptersController) GetChaptersBySubject(c *fiber.Ctx) error {
	subjectID, err := parseID(c, "subject_id")
	if err != nil {
		return err
	}
	return cc.listChapters(c, subjectID)
}

func (cc *ChaptersController) listChapters(c *fiber.Ctx, subjectID uint) error {
	chapters, err := repository.ListChapters(cc.DB.WithContext(c.UserContext()), subjectID)
	if err != nil {
		return err
	}
	if subjectID != 0 && len(chapters) == 0 {
		return fiber.NewError(fiber.StatusNotFound, "No chapters found for this subject")
	}
	return c.JSON(chapters)
}

func (cc *ChaptersController) GetChapter(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	chapter, err := repository.GetChapter(cc.DB.WithContext(c.UserContext()), id)
	if err != nil {
		return httpError(err, "Chapter")
	}
	return c.JSON(chapter)
}

func (cc *ChaptersController) CreateChapter(c *fiber.Ctx) error {
	var req createChapterRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	chapter := models.Chapter{
		SubjectID:   req.SubjectID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
	}

	err := cc.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if _, err := repository.GetSubject(tx, req.SubjectID); err != nil {
			return httpError(err, "Subject")
		}
		return repository.CreateChapter(tx, &chapter)
	})
	if err != nil {
		return httpError(err, "Chapter")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Chapter added successfully",
		"chapter": chapter,
	})
}

func (cc *ChaptersController) UpdateChapter(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req updateChapterRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	var chapter *models.Chapter
	err = cc.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		chapter, err = repository.GetChapter(tx, id)
		if err != nil {
			return err
		}

		if req.SubjectID != nil && *req.SubjectID != chapter.SubjectID {
			if _, err := repository.GetSubject(tx, *req.SubjectID); err != nil {
				return httpError(err, "Subject")
			}
			chapter.SubjectID = *req.SubjectID
		}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Chapter name must not be empty")
			}
			chapter.Name = name
		}
		if req.Description != nil {
			chapter.Description = strings.TrimSpace(*req.Description)
		}

		return repository.UpdateChapter(tx, chapter)
	})
	if err != nil {
		return httpError(err, "Chapter")
	}

	return c.JSON(fiber.Map{
		"message": "Chapter updated successfully",
		"chapter": chapter,
	})
}

func (cc *ChaptersController) DeleteChapter(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := repository.DeleteChapterCascade(cc.DB.WithContext(c.UserContext()), id); err != nil {
		return httpError(err, "Chapter")
	}
	return c.JSON(fiber.Map{"message": "Chapter deleted successfully"})
}
