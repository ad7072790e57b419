package errors

import (
	"math"
	"unicode"
)

// maxMapIDLength bounds identifiers accepted by the map store.
const maxMapIDLength = 128

// ValidateCanvas checks that a canvas is usable as a layout coordinate space.
// Width and height must be finite and strictly positive; anything else would
// make positions NaN, infinite or degenerate.
func ValidateCanvas(width, height float64) error {
	if err := ValidateDimension("width", width); err != nil {
		return err
	}
	return ValidateDimension("height", height)
}

// ValidateDimension checks one canvas side. Callers that treat zero as
// "unset" use it on values the user gave explicitly.
func ValidateDimension(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidArgument, "canvas %s must be finite, got %v", name, v)
	}
	if v <= 0 {
		return New(ErrCodeInvalidArgument, "canvas %s must be positive, got %g", name, v)
	}
	return nil
}

// ValidateMapID validates an identifier used to address a stored mind map.
//
// The validation rules are intentionally conservative:
//   - No empty IDs
//   - Maximum length of 128 characters
//   - Only letters, digits, '-' and '_'
func ValidateMapID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "map id cannot be empty")
	}
	if len(id) > maxMapIDLength {
		return New(ErrCodeInvalidInput, "map id too long (max %d characters)", maxMapIDLength)
	}
	for _, r := range id {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_') {
			return New(ErrCodeInvalidInput, "map id contains invalid character %q", r)
		}
	}
	return nil
}
