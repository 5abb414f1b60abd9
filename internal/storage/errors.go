package storage

import "errors"

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateUser is returned when a username or email is already registered.
var ErrDuplicateUser = errors.New("username or email already exists")
