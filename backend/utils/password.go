package utils

import (
	"errors"
	"regexp"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

const MinPasswordLength = 8

var (
	ErrPasswordTooShort  = errors.New("password must be at least 8 characters long")
	ErrPasswordNoDigit   = errors.New("password must include at least one number")
	ErrPasswordNoLetter  = errors.New("password must include at least one letter")
	ErrPasswordMixedCase = errors.New("password must include both uppercase and lowercase letters")
)

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePassword returns the first strength rule the password breaks.
func ValidatePassword(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	var hasDigit, hasLetter, hasUpper, hasLower bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLetter(r):
			hasLetter = true
			if unicode.IsUpper(r) {
				hasUpper = true
			}
			if unicode.IsLower(r) {
				hasLower = true
			}
		}
	}

	if !hasDigit {
		return ErrPasswordNoDigit
	}
	if !hasLetter {
		return ErrPasswordNoLetter
	}
	if !hasUpper || !hasLower {
		return ErrPasswordMixedCase
	}
	return nil
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
