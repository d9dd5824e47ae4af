package service

import "errors"

// Sentinel kinds returned by Service operations. Callers match them with
// errors.Is.
var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation failed")
	ErrPersistence = errors.New("persistence failed")
)
