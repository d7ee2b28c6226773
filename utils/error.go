package utils

import "errors"

var (
	ErrorRecordNotFound = errors.New("record not found")
	ErrSessionNotFound  = errors.New("session not found")
	ErrForbidden        = errors.New("forbidden")
	ErrReadOnly         = errors.New("screening is read only")
)
