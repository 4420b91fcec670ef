package repository

import (
	"gorm.io/gorm"

	"quizmaster/backend/models"
)

// CreateUser inserts the user and links the roles it already carries.
func CreateUser(db *gorm.DB, user *models.User) error {
	roles := user.Roles
	if err := db.Omit("Roles").Create(user).Error; err != nil {
		return translate(err)
	}
	if len(roles) == 0 {
		return nil
	}
	return translate(db.Model(user).Association("Roles").Replace(roles))
}

func GetUserByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.Preload("Roles").Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func GetUserByID(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := db.Preload("Roles").First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func EmailExists(db *gorm.DB, email string) (bool, error) {
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func UsernameExists(db *gorm.DB, username string) (bool, error) {
	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func GetRoleByName(db *gorm.DB, name string) (*models.Role, error) {
	var role models.Role
	if err := db.Where("name = ?", name).First(&role).Error; err != nil {
		return nil, translate(err)
	}
	return &role, nil
}

// UpdateUser saves profile columns; roles are left untouched.
func UpdateUser(db *gorm.DB, user *models.User) error {
	return translate(db.Omit("Roles").Save(user).Error)
}
