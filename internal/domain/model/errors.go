package model

import "errors"

// Sentinel kinds for model decoding and snapshot validation.
var (
	ErrNotANumber          = errors.New("not a number")
	ErrMalformedSnapshot   = errors.New("malformed snapshot")
	ErrMissingCollection   = errors.New("missing collection")
	ErrInvalidIdentifier   = errors.New("invalid identifier")
	ErrDuplicateIdentifier = errors.New("duplicate identifier")
)
