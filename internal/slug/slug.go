// Package slug builds and parses the human-readable URL identifiers used on
// public doctor pages.
package slug

import (
	"regexp"
	"strings"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9-]+`)
var dashRuns = regexp.MustCompile(`-{2,}`)

// Make builds "first-last" lowered and stripped to [a-z0-9-].
func Make(firstName, lastName string) string {
	s := strings.ToLower(strings.TrimSpace(firstName) + "-" + strings.TrimSpace(lastName))
	s = strings.ReplaceAll(s, " ", "-")
	s = nonSlugChars.ReplaceAllString(s, "")
	s = dashRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SplitName is the name fallback for profile URLs minted before slugs were
// stored: the part before the first hyphen is taken as the first name, the
// remainder as the last name. Lossy for multi-word first names
// ("maria-jose-garcia" splits as "maria" / "jose-garcia"); the stored slug
// column is authoritative whenever it matches.
func SplitName(s string) (firstName, lastName string, ok bool) {
	s = strings.TrimSpace(s)
	idx := strings.Index(s, "-")
	if idx <= 0 || idx == len(s)-1 {
		return "", "", false
	}
	return s[:idx], s[idx+1:], true
}
