package commands

import "errors"

var (
	ErrMissingStore      = errors.New("commands: store is required")
	ErrInvalidInput      = errors.New("commands: invalid input")
	ErrUnknownItem       = errors.New("commands: unknown shop item")
	ErrAlreadyOwned      = errors.New("commands: item already owned")
	ErrInsufficientFunds = errors.New("commands: insufficient funds")
	ErrUnknownUser       = errors.New("commands: unknown user")
	ErrUnknownServer     = errors.New("commands: unknown server")
	// ErrNoEffect reports a dispatch the reducer ignored.
	ErrNoEffect = errors.New("commands: action had no effect")
)
