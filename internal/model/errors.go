package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound   = errors.New("player not found")
	ErrAlreadyCompleted = errors.New("game is already completed")
	ErrNoRollsRemaining = errors.New("no rolls remaining")

	// Grant ledger errors
	ErrInvalidGrantAmount = errors.New("grant amount must be non-zero")
	ErrNoGrantHistory     = errors.New("no grant history for area")

	// Prize configuration errors
	ErrPrizeConfigNotFound = errors.New("prize config not found")

	// Admin credential errors
	ErrAdminCredentialNotFound = errors.New("admin credential not found")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrIncorrectPassword       = errors.New("current password is incorrect")
	ErrPasswordTooWeak         = errors.New("password does not meet minimum length")
)
