package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"quizmaster/backend/middleware"
	"quizmaster/backend/repository"
	"quizmaster/backend/utils"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

type UpdateUserRequest struct {
	FullName      *string `json:"full_name" validate:"omitempty,max=100"`
	Qualification *string `json:"qualification" validate:"omitempty,max=100"`
	DOB           *string `json:"dob"`
	OldPassword   string  `json:"old_password"`
	NewPassword   string  `json:"new_password"`
}

// GetProfile godoc
// @Summary Get user profile
// @Description Returns authenticated user's profile data
// @Tags users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /profile [get]
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	}

	user, err := repository.GetUserByID(uc.DB.WithContext(c.UserContext()), identity.UserID)
	if err != nil {
		return httpError(err, "User")
	}

	return c.JSON(fiber.Map{
		"id":            user.ID,
		"username":      user.Username,
		"email":         user.Email,
		"full_name":     user.FullName,
		"qualification": user.Qualification,
		"dob":           formatDate(user.DOB),
		"role":          user.PrimaryRole(),
		"created_at":    user.CreatedAt,
	})
}

// UpdateProfile godoc
// @Summary Update user profile
// @Description Updates profile fields and optionally the password
// @Tags users
// @Accept json
// @Produce json
// @Param input body UpdateUserRequest true "Profile update data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /profile [put]
func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	}

	var input UpdateUserRequest
	if err := bindJSON(c, &input); err != nil {
		return err
	}

	err := uc.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		user, err := repository.GetUserByID(tx, identity.UserID)
		if err != nil {
			return err
		}

		if input.FullName != nil {
			user.FullName = strings.TrimSpace(*input.FullName)
		}
		if input.Qualification != nil {
			user.Qualification = strings.TrimSpace(*input.Qualification)
		}
		if input.DOB != nil {
			dob, err := parseDate("dob", *input.DOB)
			if err != nil {
				return err
			}
			user.DOB = dob
		}

		if input.NewPassword != "" {
			if !utils.CheckPasswordHash(input.OldPassword, user.Password) {
				return fiber.NewError(fiber.StatusBadRequest, "Old password is incorrect")
			}
			if err := utils.ValidatePassword(input.NewPassword); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			hash, err := utils.HashPassword(input.NewPassword)
			if err != nil {
				return err
			}
			user.Password = hash
		}

		return repository.UpdateUser(tx, user)
	})
	if err != nil {
		return httpError(err, "User")
	}

	return c.JSON(fiber.Map{"message": "Profile updated successfully"})
}
