// models/errors.go
package models

import "errors"

// ErrCountryNotFound is returned when a name lookup matches no row.
var ErrCountryNotFound = errors.New("country not found")

// ErrValidation is returned when request input fails validation.
type ErrValidation string

func (e ErrValidation) Error() string {
	return string(e)
}
