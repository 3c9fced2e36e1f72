package app

import "errors"

// Sentinel errors for common application errors
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNoSavedSearch   = errors.New("no saved search with that id or label")
	ErrDuplicateLabel  = errors.New("a saved search with this label already exists")
)
