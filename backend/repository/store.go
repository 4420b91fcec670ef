package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"quizmaster/backend/models"
)

// Migrate creates any missing tables, columns and indexes.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Subject{},
		&models.Chapter{},
		&models.Quiz{},
		&models.Question{},
		&models.Score{},
	); err != nil {
		return err
	}

	// Subject names are unique regardless of case. The struct tag index only
	// covers exact matches.
	if err := db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_subjects_name_lower ON subjects (LOWER(name))",
	).Error; err != nil {
		return fmt.Errorf("create subject name index: %w", err)
	}
	return nil
}

var defaultRoles = []models.Role{
	{Name: models.RoleAdmin, Description: "Administrator", Permissions: "read,write,delete"},
	{Name: models.RoleUser, Description: "Quiz User", Permissions: "read"},
}

// SeedRoles makes sure the admin and user roles exist. Safe to call on every start.
func SeedRoles(db *gorm.DB) error {
	for _, role := range defaultRoles {
		r := role
		if err := db.Where(models.Role{Name: r.Name}).
			Attrs(models.Role{Description: r.Description, Permissions: r.Permissions}).
			FirstOrCreate(&r).Error; err != nil {
			return fmt.Errorf("seed role %s: %w", role.Name, translate(err))
		}
	}
	return nil
}

// SeedAdmin creates the administrator account unless a user with that email
// already exists. passwordHash must already be hashed.
func SeedAdmin(db *gorm.DB, email, username, passwordHash string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		_, err := GetUserByEmail(tx, email)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}

		role, err := GetRoleByName(tx, models.RoleAdmin)
		if err != nil {
			return fmt.Errorf("admin role: %w", err)
		}

		admin := &models.User{
			Username:     username,
			Email:        email,
			Password:     passwordHash,
			Active:       true,
			FsUniquifier: uuid.NewString(),
			Roles:        []models.Role{*role},
		}
		return CreateUser(tx, admin)
	})
}
