package utils

import (
	"fmt"
	"regexp"
)

var (
	// e164Pattern matches a leading + followed by 2-15 digits, first digit 1-9
	e164Pattern = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)
	// otpPattern matches a 4-8 digit verification code
	otpPattern = regexp.MustCompile(`^\d{4,8}$`)
)

// ValidatePhoneNumber validates an E.164 phone number. Malformed input is
// rejected here, before any provider call.
func ValidatePhoneNumber(to string) (string, error) {
	if to == "" {
		return "", fmt.Errorf("phone number is required")
	}
	if !e164Pattern.MatchString(to) {
		return "", fmt.Errorf("phone number must be in E.164 format (e.g. +15551234567)")
	}
	return to, nil
}

// ValidateOTPCode validates a verification code's format
func ValidateOTPCode(code string) error {
	if code == "" {
		return fmt.Errorf("verification code is required")
	}
	if !otpPattern.MatchString(code) {
		return fmt.Errorf("verification code must be 4-8 digits")
	}
	return nil
}
