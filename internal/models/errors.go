// Package models defines the exercise and session records and their validation.
package models

import "errors"

// ErrValidation wraps every record validation failure.
var ErrValidation = errors.New("validation failed")
