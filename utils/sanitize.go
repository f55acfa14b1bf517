package utils

import "github.com/microcosm-cc/bluemonday"

// Goal titles, descriptions and check-in notes are stored as entered and
// rendered by the frontend, so they go through a strict policy that strips
// all markup.
var sanitizer = bluemonday.StrictPolicy()

// Sanitize strips HTML from user-entered text to prevent stored XSS.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
