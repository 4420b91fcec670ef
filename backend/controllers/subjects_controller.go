package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"quizmaster/backend/models"
	"quizmaster/backend/repository"
)

type SubjectsController struct {
	DB *gorm.DB
}

func NewSubjectsController(db *gorm.DB) *SubjectsController {
	return &SubjectsController{DB: db}
}

type createSubjectRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=255"`
}

type updateSubjectRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

type deleteSubjectRequest struct {
	ID uint `json:"id"`
}

var errSubjectExists = fiber.NewError(fiber.StatusConflict, "Subject with this name already exists")

// GetSubjects godoc
// @Summary List subjects
// @Tags subjects
// @Produce json
// @Success 200 {array} models.Subject
// @Security ApiKeyAuth
// @Router /subjects [get]
func (sc *SubjectsController) GetSubjects(c *fiber.Ctx) error {
	subjects, err := repository.ListSubjects(sc.DB.WithContext(c.UserContext()))
	if err != nil {
		return err
	}
	return c.JSON(subjects)
}

func (sc *SubjectsController) GetSubject(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	subject, err := repository.GetSubject(sc.DB.WithContext(c.UserContext()), id)
	if err != nil {
		return httpError(err, "Subject")
	}
	return c.JSON(subject)
}

// CreateSubject godoc
// @Summary Create subject
// @Tags subjects
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /subjects [post]
func (sc *SubjectsController) CreateSubject(c *fiber.Ctx) error {
	var req createSubjectRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Subject name is required")
	}

	subject := models.Subject{
		Name:        name,
		Slug:        slug.Make(name),
		Description: strings.TrimSpace(req.Description),
	}

	err := sc.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		taken, err := repository.SubjectNameTaken(tx, name, 0)
		if err != nil {
			return err
		}
		if taken {
			return errSubjectExists
		}
		return repository.CreateSubject(tx, &subject)
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return errSubjectExists
		}
		return httpError(err, "Subject")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Subject added successfully",
		"subject": subject,
	})
}

func (sc *SubjectsController) UpdateSubject(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req updateSubjectRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	var subject *models.Subject
	err = sc.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		subject, err = repository.GetSubject(tx, id)
		if err != nil {
			return err
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Subject name must not be empty")
			}
			taken, err := repository.SubjectNameTaken(tx, name, id)
			if err != nil {
				return err
			}
			if taken {
				return errSubjectExists
			}
			subject.Name = name
			subject.Slug = slug.Make(name)
		}
		if req.Description != nil {
			subject.Description = strings.TrimSpace(*req.Description)
		}

		return repository.UpdateSubject(tx, subject)
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return errSubjectExists
		}
		return httpError(err, "Subject")
	}

	return c.JSON(fiber.Map{
		"message": "Subject updated successfully",
		"subject": subject,
	})
}

// DeleteSubject removes the subject and everything under it.
func (sc *SubjectsController) DeleteSubject(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	return sc.deleteSubject(c, id)
}

// DeleteSubjectByBody accepts the subject id as {"id": n} in the request body.
func (sc *SubjectsController) DeleteSubjectByBody(c *fiber.Ctx) error {
	var req deleteSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if req.ID == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Subject ID is required for deletion")
	}
	return sc.deleteSubject(c, req.ID)
}

func (sc *SubjectsController) deleteSubject(c *fiber.Ctx, id uint) error {
	if err := repository.DeleteSubjectCascade(sc.DB.WithContext(c.UserContext()), id); err != nil {
		return httpError(err, "Subject")
	}
	return c.JSON(fiber.Map{"message": "Subject deleted successfully"})
}
