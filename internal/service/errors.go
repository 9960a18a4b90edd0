package service

import "errors"

var (
	// ErrNotFound is returned for edits, deletes and approvals that
	// target a row no longer present in the store.
	ErrNotFound = errors.New("record not found")

	// ErrInsufficientFunds is returned when a withdrawal exceeds the
	// available back-safe balance.
	ErrInsufficientFunds = errors.New("insufficient funds in back safe")

	// ErrValidation covers malformed or out-of-range input rejected at
	// the service boundary, before it reaches the reconciliation engine.
	ErrValidation = errors.New("validation failed")
)
