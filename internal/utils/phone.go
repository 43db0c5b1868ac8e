package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// e164Pattern matches a normalized E.164 number: a plus sign, a non-zero
// leading digit and up to 15 digits total.
var e164Pattern = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)

// ValidatePhoneNumber validates a phone number and normalizes it to E.164.
// Separators commonly pasted from contact apps are stripped before matching.
func ValidatePhoneNumber(phoneNumber string) (bool, string, error) {
	stripped := strings.ReplaceAll(phoneNumber, "-", "")
	stripped = strings.ReplaceAll(stripped, " ", "")
	stripped = strings.ReplaceAll(stripped, "(", "")
	stripped = strings.ReplaceAll(stripped, ")", "")
	stripped = strings.ReplaceAll(stripped, ".", "")

	if !e164Pattern.MatchString(stripped) {
		return false, "", fmt.Errorf("phone number must be in E.164 format")
	}

	return true, stripped, nil
}

// ValidateCodeFormat checks that a submitted code is exactly length numeric digits
func ValidateCodeFormat(code string, length int) bool {
	if len(code) != length {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// MaskPhoneNumber hides the middle digits of a phone number for logs and
// status responses, e.g. +14155550100 -> +1415***0100
func MaskPhoneNumber(phoneNumber string) string {
	if len(phoneNumber) < 8 {
		return phoneNumber
	}
	return phoneNumber[:5] + "***" + phoneNumber[len(phoneNumber)-4:]
}
