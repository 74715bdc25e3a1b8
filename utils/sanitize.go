package utils

import "github.com/microcosm-cc/bluemonday"

var (
	ugcPolicy   = bluemonday.UGCPolicy()
	plainPolicy = bluemonday.StrictPolicy()
)

// Sanitize cleans user HTML (journal content) to prevent XSS while keeping
// basic formatting.
func Sanitize(input string) string {
	return ugcPolicy.Sanitize(input)
}

// SanitizePlain strips all markup; used for titles, moods, and notes that are
// rendered as plain text.
func SanitizePlain(input string) string {
	return plainPolicy.Sanitize(input)
}
