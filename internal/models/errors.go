package models

import "errors"

// Common errors used throughout the application
var (
	ErrEventNotFound      = errors.New("event not found")
	ErrNoDraft            = errors.New("no pending order draft")
	ErrNoOrder            = errors.New("no order record")
	ErrNoSession          = errors.New("no active session")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidInput       = errors.New("invalid input")
)
