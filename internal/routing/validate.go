package routing

import (
	"regexp"
	"strings"

	"github.com/rgdevment/scam-scanner/internal/domain"
)

const (
	MinDigits = 7
	MaxDigits = 15
)

var allowedChars = regexp.MustCompile(`^\+?[0-9\s\v\-()]+$`)

// ValidateFormat checks that input looks like a phone number: an optional
// leading '+', then only digits, whitespace, dashes and parentheses, with
// between MinDigits and MaxDigits digits.
//
// It returns domain.ErrBlankInput or domain.ErrInvalidFormat.
func ValidateFormat(input string) error {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return domain.ErrBlankInput
	}

	if !allowedChars.MatchString(trimmed) {
		return domain.ErrInvalidFormat
	}

	digits := 0
	for _, c := range trimmed {
		if c >= '0' && c <= '9' {
			digits++
		}
	}
	if digits < MinDigits || digits > MaxDigits {
		return domain.ErrInvalidFormat
	}

	return nil
}

// IsValidFormat is the boolean form of ValidateFormat.
func IsValidFormat(input string) bool {
	return ValidateFormat(input) == nil
}
