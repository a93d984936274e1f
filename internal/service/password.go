package service

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordVerifier abstracts credential comparison so the storage scheme can
// be upgraded without touching the authenticator. Hash produces the value to
// store; Verify compares a stored value against a submitted password.
type PasswordVerifier interface {
	Hash(password string) (string, error)
	Verify(stored, submitted string) error
}

// NewPasswordVerifier returns the verifier for the configured scheme.
// "plain" matches the legacy credential store, which holds passwords as-is;
// "bcrypt" is the upgrade path.
func NewPasswordVerifier(scheme string, bcryptCost int) (PasswordVerifier, error) {
	switch scheme {
	case "plain":
		return plainVerifier{}, nil
	case "bcrypt":
		return bcryptVerifier{cost: bcryptCost}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", scheme)
	}
}

// plainVerifier stores passwords unmodified. The comparison is constant-time
// for equal-length inputs so the legacy scheme does not also leak timing.
type plainVerifier struct{}

func (plainVerifier) Hash(password string) (string, error) {
	return password, nil
}

func (plainVerifier) Verify(stored, submitted string) error {
	if len(stored) != len(submitted) {
		return ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(submitted)) != 1 {
		return ErrInvalidCredentials
	}
	return nil
}

type bcryptVerifier struct {
	cost int
}

func (v bcryptVerifier) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), v.cost)
	return string(hash), err
}

func (v bcryptVerifier) Verify(stored, submitted string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(submitted)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
