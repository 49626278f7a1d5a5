package services

import "errors"

// ErrNotFound covers records that are absent, soft-deleted, or owned by
// another user. ErrValidation wraps rejected input; callers map the two
// to 404 and 400 respectively.
var (
	ErrNotFound   = errors.New("record not found")
	ErrValidation = errors.New("validation failed")
)
