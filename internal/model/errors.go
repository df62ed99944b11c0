package model

import "errors"

var (
	// ErrNotFound is returned by stores when no cake has the given id.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateName is returned by stores when the case-insensitive unique
	// index on name rejects a write.
	ErrDuplicateName = errors.New("duplicate name")
)
