package utils

import "github.com/microcosm-cc/bluemonday"

// User-authored titles, bodies and comments all pass through the UGC policy
// before they are stored.
var sanitizer = bluemonday.UGCPolicy()

// Sanitize strips markup not allowed in user generated content.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
