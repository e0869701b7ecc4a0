package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	passwordHashCost = 10
	resetTokenBytes  = 20
	resetTokenTTL    = 10 * time.Minute
)

// CredentialError reports a failed hash or token operation. It is
// distinct from a wrong password, which VerifyPassword reports as a
// plain false.
type CredentialError struct {
	Op  string
	Err error
}

func (e *CredentialError) Error() string {
	return "credential " + e.Op + ": " + e.Err.Error()
}

func (e *CredentialError) Unwrap() error {
	return e.Err
}

// HashPassword returns the bcrypt hash of a raw password.
func HashPassword(raw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), passwordHashCost)
	if err != nil {
		return "", &CredentialError{Op: "hash", Err: err}
	}
	return string(hash), nil
}

// VerifyPassword checks a raw password against a stored bcrypt hash.
// A mismatch is (false, nil); a malformed hash or internal failure is a
// CredentialError.
func VerifyPassword(raw, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, &CredentialError{Op: "verify", Err: err}
	}
}

// IsHashed reports whether s already looks like a bcrypt hash. Save
// paths use it to skip re-hashing an unchanged password.
func IsHashed(s string) bool {
	return strings.HasPrefix(s, "$2a$") ||
		strings.HasPrefix(s, "$2b$") ||
		strings.HasPrefix(s, "$2y$")
}

// IssueResetToken generates a password-reset token. The plaintext goes
// back to the caller for out-of-band delivery; only the hashed form and
// the expiry are meant to be stored.
func IssueResetToken() (plain, hashed string, expiry time.Time, err error) {
	buf := make([]byte, resetTokenBytes)
	if _, rerr := rand.Read(buf); rerr != nil {
		return "", "", time.Time{}, &CredentialError{Op: "token", Err: rerr}
	}
	plain = hex.EncodeToString(buf)
	return plain, HashResetToken(plain), time.Now().Add(resetTokenTTL), nil
}

// HashResetToken returns the stored form of a reset token: its SHA-256
// hex digest.
func HashResetToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
