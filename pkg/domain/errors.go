// Package domain holds the shared error taxonomy. Handlers map these
// sentinels to HTTP status codes; services wrap them with %w and never
// leak driver errors upward.
package domain

import "errors"

var (
	// ErrNotFound is returned when a referenced entity is absent or not
	// owned by the caller.
	ErrNotFound = errors.New("resource not found")
	// ErrConflict is returned on unique-key collisions such as duplicate
	// portfolio names or an already-registered email.
	ErrConflict = errors.New("resource already exists")
	// ErrValidation is returned when input validation fails.
	ErrValidation = errors.New("validation error")
	// ErrMissingParameters is returned when a required field is absent.
	ErrMissingParameters = errors.New("missing parameters")
	// ErrInvalidAmount is returned when a monetary value has more than
	// two decimal places or does not parse at all.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNegativeBalance is returned when a fund modification would
	// drive a cash balance below zero.
	ErrNegativeBalance = errors.New("negative balance")
	// ErrInsufficientFunds is returned when a buy or transfer exceeds
	// the available cash.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInsufficientShares is returned when a sell exceeds the held
	// quantity.
	ErrInsufficientShares = errors.New("insufficient shares")
	// ErrUnauthorized is returned when no valid caller identity exists.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when the caller may not perform an action.
	ErrForbidden = errors.New("forbidden")
)
