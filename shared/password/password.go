// Package password hashes and checks admin credentials with bcrypt.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor used for new hashes.
const Cost = bcrypt.DefaultCost

var (
	ErrEmpty    = errors.New("password must not be empty")
	ErrMismatch = errors.New("password does not match")
)

func Hash(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmpty
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	return string(hashed), nil
}

// Verify returns ErrMismatch when plain does not produce hashed. Malformed hashes are reported as errors of their own.
func Verify(plain, hashed string) error {
	if plain == "" || hashed == "" {
		return ErrMismatch
	}

	switch err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)); {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrMismatch
	default:
		return fmt.Errorf("comparing password: %w", err)
	}
}
