package utils

import "strings"

// Ptr returns a pointer to v
func Ptr[T any](v T) *T {
	return &v
}

// Assign overwrites dst with *src when src is set
func Assign[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// AssignTrimmed overwrites dst with the trimmed value of src when src is set
func AssignTrimmed(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}
