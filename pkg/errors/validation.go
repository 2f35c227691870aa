package errors

import (
	"math"
	"regexp"
	"unicode"
)

// systemNameRegex matches catalog names: lowercase, digits and dashes.
var systemNameRegex = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// ValidateSystemName validates a fractal system name before it is used as a
// catalog key, cache key component or URL path segment.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 64 characters
//   - Lowercase letters, digits and dashes, starting with a letter
func ValidateSystemName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "system name cannot be empty")
	}

	const maxNameLength = 64
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "system name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "system name contains invalid control characters")
		}
	}

	if !systemNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid system name: %q", name)
	}

	return nil
}

// ValidateCount checks a requested point count. Counts must be non-negative;
// when max > 0 they must also not exceed max.
func ValidateCount(n, max int) error {
	if n < 0 {
		return New(ErrCodeInvalidCount, "point count cannot be negative: %d", n)
	}
	if max > 0 && n > max {
		return New(ErrCodeInvalidCount, "point count %d exceeds limit %d", n, max)
	}
	return nil
}

// ValidateDimensions checks raster dimensions in pixels.
func ValidateDimensions(width, height int) error {
	const maxDimension = 8192
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidInput, "dimensions must be positive: %dx%d", width, height)
	}
	if width > maxDimension || height > maxDimension {
		return New(ErrCodeInvalidInput, "dimensions too large: %dx%d (max %d)", width, height, maxDimension)
	}
	return nil
}

// ValidateFinite reports an INVALID_INPUT error when v is NaN or infinite.
func ValidateFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be a finite number", field)
	}
	return nil
}
