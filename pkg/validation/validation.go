package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

var (
	// ErrInvalidInput indicates the input failed validation
	ErrInvalidInput = errors.New("invalid input")

	// Device name must be alphanumeric with hyphens/underscores/spaces, 3-100 chars
	deviceNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9 _-]{2,99}$`)
)

// SanitizeString removes potentially dangerous characters and trims whitespace
func SanitizeString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters except newline and tab
	var builder strings.Builder
	for _, r := range input {
		if !unicode.IsControl(r) || r == '\n' || r == '\t' {
			builder.WriteRune(r)
		}
	}

	return builder.String()
}

// ValidateDeviceName checks if a device name is valid
func ValidateDeviceName(name string) error {
	name = SanitizeString(name)

	if name == "" {
		return errors.New("device name cannot be empty")
	}

	if len(name) < 3 {
		return errors.New("device name must be at least 3 characters")
	}

	if len(name) > 100 {
		return errors.New("device name must not exceed 100 characters")
	}

	if !deviceNameRegex.MatchString(name) {
		return errors.New("device name must start with alphanumeric and contain only letters, numbers, spaces, hyphens, and underscores")
	}

	return nil
}

// ValidateUsername checks if a username is valid
func ValidateUsername(username string) error {
	username = SanitizeString(username)

	if username == "" {
		return errors.New("username cannot be empty")
	}

	if len(username) < 3 {
		return errors.New("username must be at least 3 characters")
	}

	if len(username) > 50 {
		return errors.New("username must not exceed 50 characters")
	}

	return nil
}

// ValidatePassword checks if a password meets security requirements
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	if len(password) > 128 {
		return errors.New("password must not exceed 128 characters")
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasNumber = true
		}
	}

	if !hasUpper {
		return errors.New("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return errors.New("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return errors.New("password must contain at least one number")
	}

	return nil
}

// ValidateUsageDuration rejects batch values no tracker can legitimately report
func ValidateUsageDuration(minutes float64) error {
	if minutes < 0 {
		return errors.New("usage duration cannot be negative")
	}

	if minutes > 24*60 {
		return errors.New("usage duration cannot exceed 24 hours")
	}

	return nil
}
