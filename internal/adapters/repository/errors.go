package repository

import "errors"

// Sentinel kinds for document store errors.
var (
	ErrCorruptDocument = errors.New("stored document is corrupt")
	ErrSaveDocument    = errors.New("save document")
	ErrStoreClosed     = errors.New("store is closed")
)
