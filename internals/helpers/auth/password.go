package helper

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLength = 8

func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", errors.New("password must be at least 8 characters")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPasswordHash: nil kalau cocok.
func CheckPasswordHash(hash, password string) error {
	if strings.TrimSpace(hash) == "" {
		return bcrypt.ErrMismatchedHashAndPassword
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
