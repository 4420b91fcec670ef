package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"quizmaster/backend/services"
)

type AuthController struct {
	Auth   *services.AuthService
	Logger *log.Logger
}

func NewAuthController(auth *services.AuthService, logger *log.Logger) *AuthController {
	return &AuthController{Auth: auth, Logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param user body services.RegisterInput true "User registration data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := bindJSON(c, &input); err != nil {
		return err
	}

	user, err := ac.Auth.RegisterUser(c.UserContext(), input)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			return fiber.NewError(fiber.StatusBadRequest, verr.Message)
		case errors.Is(err, services.ErrEmailTaken):
			return fiber.NewError(fiber.StatusConflict, "Email already exists")
		case errors.Is(err, services.ErrUsernameTaken):
			return fiber.NewError(fiber.StatusConflict, "Username already exists")
		}
		ac.Logger.Printf("register %s: %v", input.Email, err)
		return fiber.NewError(fiber.StatusInternalServerError, "An error occurred during registration")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user,
	})
}

// Login godoc
// @Summary User login
// @Description Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input loginRequest
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if input.Email == "" || input.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Email and password are required")
	}

	token, err := ac.Auth.Authenticate(c.UserContext(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"message":    "Logged in successfully",
		"auth_token": token,
	})
}

// Logout is stateless: tokens stay valid until they expire.
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Logged out successfully",
	})
}
