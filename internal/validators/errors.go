package validators

import "errors"

var (
	ErrInvalidUserID  = errors.New("invalid user ID")
	ErrInvalidEntryID = errors.New("invalid entry ID")
	ErrEmptyTitle     = errors.New("title is required")
	ErrEmptySecret    = errors.New("secret envelope is required")
)
