package repository

import "errors"

// ErrNotFound indicates the requested model or version does not exist.
var ErrNotFound = errors.New("not found")
