package core

import "errors"

// Common errors.
var (
	ErrStackNotFound    = errors.New("stack not found")
	ErrInvalidStackName = errors.New("invalid stack name")
	ErrReadOnly         = errors.New("repository is in read-only mode")
)
