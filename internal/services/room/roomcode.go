package room

import (
	"errors"
	"math/rand/v2"
	"strings"
)

const (
	codeLength   = 6
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// GenerateCode returns a random 6-character room code. Uniqueness is
// enforced against the database on insert, not here.
func GenerateCode() string {
	code := make([]byte, codeLength)
	for i := range code {
		code[i] = codeAlphabet[rand.IntN(len(codeAlphabet))]
	}
	return string(code)
}

// NormalizeCode maps user input onto the canonical (uppercase) form.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateCode checks the canonical 6-character alphanumeric shape.
func ValidateCode(code string) error {
	if len(code) != codeLength {
		return errors.New("room code must be exactly 6 characters")
	}
	for _, ch := range NormalizeCode(code) {
		if !strings.ContainsRune(codeAlphabet, ch) {
			return errors.New("room code must contain only letters and digits")
		}
	}
	return nil
}
