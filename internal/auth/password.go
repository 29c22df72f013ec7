package auth

import (
	"errors"
	"fmt"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

const (
	// MinPasswordLength is the minimum password length requirement
	MinPasswordLength = 8
	// BcryptCost is the cost factor for bcrypt hashing (10 = ~100ms)
	BcryptCost = 10
)

var (
	hasLetter = regexp.MustCompile(`[a-zA-Z]`)
	hasNumber = regexp.MustCompile(`[0-9]`)

	// ErrInvalidCredentials is returned for a wrong username or password.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// ValidatePassword enforces the admin password strength rules.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLength)
	}
	if !hasLetter.MatchString(password) || !hasNumber.MatchString(password) {
		return fmt.Errorf("password must contain at least one letter and one number")
	}
	return nil
}

// HashPassword validates and bcrypt-hashes a password.
func HashPassword(password string) (string, error) {
	if err := ValidatePassword(password); err != nil {
		return "", err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Credentials is the single admin account allowed to log in.
type Credentials struct {
	Username     string
	PasswordHash string
}

// Verify checks a login attempt against the stored bcrypt hash.
func (c Credentials) Verify(username, password string) error {
	if c.PasswordHash == "" || username != c.Username {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
