package stats

import "strings"

// MatchTag reports whether query is a case-insensitive substring of tag.
// The empty query matches every tag.
func MatchTag(tag, query string) bool {
	return strings.Contains(strings.ToLower(tag), strings.ToLower(query))
}
