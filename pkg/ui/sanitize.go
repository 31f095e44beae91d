package ui

import "strings"

var stripReplacer = strings.NewReplacer("<", "", ">", "", `"`, "", "'", "", "&", "")

// SanitizeQuery removes the characters < > " ' &, trims the result and
// collapses whitespace runs to one space.
func SanitizeQuery(input string) string {
	return strings.Join(strings.Fields(stripReplacer.Replace(input)), " ")
}
