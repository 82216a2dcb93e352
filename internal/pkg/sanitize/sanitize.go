package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// Text strips every tag and returns trimmed plain text. bluemonday escapes
// what it keeps, so entities are decoded back before comparing or storing.
func Text(input string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(input)))
}

// ContainsMarkup reports whether the strict policy would rewrite input.
// Anything bluemonday reads as a tag counts, including `List<T>`.
func ContainsMarkup(input string) bool {
	return Text(input) != strings.TrimSpace(input)
}
