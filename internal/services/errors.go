package services

import (
	"errors"
)

// Expected failure kinds returned by the services. Controllers translate
// these with errors.Is; anything else is treated as an internal error.
var (
	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("user with this email already exists")
	// ErrInvalidCredentials is returned on signin failure. The same value is
	// used for unknown email and wrong password so the response does not leak
	// which part was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserNotFound is returned when no user matches the requested ID.
	ErrUserNotFound = errors.New("user not found")
	// ErrHashingFailed is returned when the bcrypt primitive itself fails.
	// A password mismatch is not a hashing failure.
	ErrHashingFailed = errors.New("error while hashing password")
	// ErrInvalidToken is returned when a bearer token is malformed, carries a
	// bad signature, or has expired.
	ErrInvalidToken = errors.New("invalid token")
)
