package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"quizmaster/backend/config"
	"quizmaster/backend/models"
	"quizmaster/backend/repository"
	"quizmaster/backend/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
)

// ValidationError reports a rejected registration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type AuthService struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Logger *log.Logger
}

func NewAuthService(db *gorm.DB, cfg *config.Config, logger *log.Logger) *AuthService {
	return &AuthService{DB: db, Cfg: cfg, Logger: logger}
}

type RegisterInput struct {
	Username      string `json:"username" validate:"required,max=80"`
	Email         string `json:"email" validate:"required"`
	Password      string `json:"password" validate:"required"`
	FullName      string `json:"full_name" validate:"max=100"`
	Qualification string `json:"qualification" validate:"max=100"`
	DOB           string `json:"dob"` // YYYY-MM-DD
}

// RegisterUser validates the input and stores a new user with the user role.
func (s *AuthService) RegisterUser(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Username = strings.TrimSpace(in.Username)

	if in.Username == "" {
		return nil, &ValidationError{Field: "username", Message: "username is required"}
	}
	if !utils.IsValidEmail(in.Email) {
		return nil, &ValidationError{Field: "email", Message: "invalid email format"}
	}
	if err := utils.ValidatePassword(in.Password); err != nil {
		return nil, &ValidationError{Field: "password", Message: err.Error()}
	}

	var dob *datatypes.Date
	if in.DOB != "" {
		parsed, err := time.Parse("2006-01-02", in.DOB)
		if err != nil {
			return nil, &ValidationError{Field: "dob", Message: "invalid date format, use YYYY-MM-DD"}
		}
		d := datatypes.Date(parsed)
		dob = &d
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:      in.Username,
		Email:         in.Email,
		Password:      hash,
		FullName:      in.FullName,
		Qualification: in.Qualification,
		DOB:           dob,
		Active:        true,
		FsUniquifier:  uuid.NewString(),
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := repository.EmailExists(tx, user.Email)
		if err != nil {
			return err
		}
		if taken {
			return ErrEmailTaken
		}

		taken, err = repository.UsernameExists(tx, user.Username)
		if err != nil {
			return err
		}
		if taken {
			return ErrUsernameTaken
		}

		role, err := repository.GetRoleByName(tx, models.RoleUser)
		if err != nil {
			return fmt.Errorf("user role: %w", err)
		}
		user.Roles = []models.Role{*role}

		if err := repository.CreateUser(tx, user); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return ErrEmailTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Printf("Registered user %d (%s)", user.ID, user.Email)
	return user, nil
}

// Authenticate returns a signed token for valid credentials. Unknown email,
// inactive account and wrong password all yield ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (string, error) {
	user, err := repository.GetUserByEmail(s.DB.WithContext(ctx), strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !user.Active || !utils.CheckPasswordHash(password, user.Password) {
		return "", ErrInvalidCredentials
	}

	return s.IssueToken(user)
}

func (s *AuthService) IssueToken(user *models.User) (string, error) {
	return utils.GenerateJWTToken(user.ID, user.Email, user.PrimaryRole(), s.Cfg)
}

func (s *AuthService) DecodeToken(token string) (*utils.Claims, error) {
	return utils.ParseJWTToken(token, s.Cfg)
}
