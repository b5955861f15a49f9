// Package names splits candidate display names and resolves them to existing
// people records.
package names

import (
	"regexp"
	"strings"

	"github.com/cocodems/elections/refdata"
)

// Parts is a display name split into first, middle and last.
type Parts = refdata.NameParts

var (
	trailingParen = regexp.MustCompile(`\s+\(.*?\)\s*$`)
	trailingStar  = regexp.MustCompile(`\s+\*\s*$`)
	nonNameChars  = regexp.MustCompile(`[^a-z\s\-']`)
)

// Splitter splits display names, consulting a table of hand-split names first.
type Splitter struct {
	Special refdata.SpecialNames
}

// Split breaks full into parts. One token is a first name only, two are first
// and last, and three or more put everything between first and last into the
// middle name.
func (s Splitter) Split(full string) Parts {
	name := strings.Join(strings.Fields(full), " ")
	if p, ok := s.Special.Lookup(name); ok {
		return p
	}
	name = strings.TrimSpace(trailingParen.ReplaceAllString(name, ""))
	name = strings.TrimSpace(trailingStar.ReplaceAllString(name, ""))
	if p, ok := s.Special.Lookup(name); ok {
		return p
	}

	tokens := strings.Fields(name)
	switch len(tokens) {
	case 0:
		return Parts{}
	case 1:
		return Parts{First: tokens[0]}
	case 2:
		return Parts{First: tokens[0], Last: tokens[1]}
	default:
		return Parts{
			First:  tokens[0],
			Middle: strings.Join(tokens[1:len(tokens)-1], " "),
			Last:   tokens[len(tokens)-1],
		}
	}
}

// Key normalizes a name part for comparison: lowercase, letters, spaces,
// hyphens and apostrophes only, whitespace collapsed.
func Key(s string) string {
	s = nonNameChars.ReplaceAllString(strings.ToLower(s), "")
	return strings.Join(strings.Fields(s), " ")
}

// Full joins non-empty parts with single spaces.
func Full(p Parts) string {
	return strings.Join(strings.Fields(p.First+" "+p.Middle+" "+p.Last), " ")
}
