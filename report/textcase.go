package report

import (
	"regexp"
	"strings"
	"unicode"
)

// minorWords stay lowercase when re-casing, unless they start the text.
var minorWords = map[string]bool{
	"of": true, "in": true, "the": true, "on": true, "at": true, "for": true,
	"and": true, "or": true, "but": true, "to": true, "a": true, "an": true,
}

var partySuffix = regexp.MustCompile(`(?i)\s*\((rep|dem|ind|lib|grn|con|wgr|np)\)$`)

// IsAllCaps reports whether s has at least one cased letter and no lowercase letters.
func IsAllCaps(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

// FixCase re-cases all-caps text to title case, keeping minor words lowercase
// after the first word. Mixed-case text is returned unchanged unless force is set.
func FixCase(s string, force bool) string {
	if !force && !IsAllCaps(s) {
		return s
	}
	words := strings.Fields(s)
	for i, w := range words {
		if i > 0 && minorWords[strings.ToLower(w)] {
			words[i] = strings.ToLower(w)
			continue
		}
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func capitalize(w string) string {
	rs := []rune(strings.ToLower(w))
	if len(rs) == 0 {
		return w
	}
	rs[0] = unicode.ToUpper(rs[0])
	return string(rs)
}

// CleanCandidateName strips dot leaders, trailing periods and party annotations
// such as "(REP)", then re-cases all-caps names.
func CleanCandidateName(name string) string {
	name = trimTrailingDots(name)
	name = partySuffix.ReplaceAllString(name, "")
	name = trimTrailingDots(name)
	return FixCase(strings.Join(strings.Fields(name), " "), false)
}

func trimTrailingDots(s string) string {
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(s), ". "))
}
