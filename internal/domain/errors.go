package domain

import "errors"

// ErrInvalidInput marks inputs rejected at an engine boundary before any
// computation runs. Callers branch on it with errors.Is.
var ErrInvalidInput = errors.New("invalid input")
