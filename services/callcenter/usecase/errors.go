package usecase

import "errors"

// ErrValidation marks malformed client input, detected before any
// provider or credential logic runs.
var ErrValidation = errors.New("validation failed")
