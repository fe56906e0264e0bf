package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dtroode/authgate/internal/model"
)

const (
	maxLoginLength   = 255
	maxNameLength    = 50
	maxRoleLength    = 255
	minPasswordChars = 1
)

func requireText(field, value string, max int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: %s is required", model.ErrInvalidInput, field)
	}
	if utf8.RuneCountInString(value) > max {
		return "", fmt.Errorf("%w: %s is longer than %d characters", model.ErrInvalidInput, field, max)
	}
	return value, nil
}

func optionalText(field, value string, max int) (string, error) {
	value = strings.TrimSpace(value)
	if utf8.RuneCountInString(value) > max {
		return "", fmt.Errorf("%w: %s is longer than %d characters", model.ErrInvalidInput, field, max)
	}
	return value, nil
}

func requirePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordChars {
		return fmt.Errorf("%w: password is required", model.ErrInvalidInput)
	}
	return nil
}
