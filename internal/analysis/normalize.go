package analysis

import "strings"

// Normalize collapses every whitespace run into a single space and trims
// both ends. Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
