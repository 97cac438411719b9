package errors

import "errors"

var (
	ErrNotFound = errors.New("lost and found item not found")

	ErrInvalidID = errors.New("invalid item ID format")
)
