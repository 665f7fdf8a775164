package domain

import "errors"

// Sentinel errors shared across services. Services wrap repository errors with
// context; these are compared with errors.Is at the delivery boundary.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidToken    = errors.New("invalid or expired authorization token")
	ErrShiftFull       = errors.New("shift is already full")
	ErrAlreadySignedUp = errors.New("already signed up for this shift")
	ErrNotSignedUp     = errors.New("not signed up for this shift")
	ErrLockTimeout     = errors.New("timed out waiting for the signup lock")
)
