package model

import "errors"

var (
	// ErrNotFound is returned by stores when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrVersionConflict is returned when a compare-and-swap on progress lost the race.
	ErrVersionConflict = errors.New("progress version conflict")
	// ErrPersistence marks a durable write that failed; the caller may retry.
	ErrPersistence = errors.New("persistence failure")

	ErrInvalidLevel     = errors.New("invalid level number")
	ErrWrongPhase       = errors.New("action is out of sequence")
	ErrIncorrectFlag    = errors.New("incorrect flag")
	ErrIncorrectCode    = errors.New("incorrect location code")
	ErrEmptySubmission  = errors.New("empty submission")
	ErrNoHintAvailable  = errors.New("no location hint available")
	ErrNotAuthenticated = errors.New("not authenticated")

	ErrTokenRevoked  = errors.New("refresh token revoked")
	ErrTokenExpired  = errors.New("refresh token expired")
	ErrTokenMismatch = errors.New("refresh token mismatch")

	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrPasswordMismatch   = errors.New("passwords do not match")
)
