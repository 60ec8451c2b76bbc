package utils

import "regexp"

var urlSafePattern = regexp.MustCompile(`^[a-zA-Z0-9-_]+$`)

// IsURLSafe reports whether value can be used as a path segment or file name part, as bank IDs are.
func IsURLSafe(value string) bool {
	return urlSafePattern.MatchString(value)
}
