package services

import (
	"errors"
	"strings"
)

var ErrAuthCredentialsInvalid = errors.New("auth credentials invalid")

// NormalizeUsername folds a raw username to its canonical form: the
// same normalization feeds key derivation, so "Anna " and "anna" name
// one account.
func NormalizeUsername(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// NormalizeCredentialsInput validates and canonicalizes the login
// form. The password is taken verbatim apart from a rejection of the
// all-whitespace case: trimming it would silently change the derived
// key for users whose password genuinely ends in a space.
func NormalizeCredentialsInput(usernameRaw string, passwordRaw string) (string, string, error) {
	username := NormalizeUsername(usernameRaw)
	if username == "" || strings.TrimSpace(passwordRaw) == "" {
		return "", "", ErrAuthCredentialsInvalid
	}
	return username, passwordRaw, nil
}
