package report

import (
	"fmt"
	"strings"
)

// SkipRules describes the noise lines of a report generation.
type SkipRules struct {
	DropExact    []string // whole trimmed line, case-insensitive
	DropPrefix   []string
	DropContains []string // case-insensitive
	// BreakPrefix lines close the current block and are otherwise dropped.
	BreakPrefix []string
	// StartMarker, when set, discards every line before the first line containing it.
	StartMarker string
	// SkipMarker also discards the marker line itself.
	SkipMarker bool
	// MarkerOptional keeps the whole text when the marker is absent.
	MarkerOptional bool
}

// NormalizeNewlines converts CRLF and lone CR line endings to LF.
func NormalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// Split applies the rules to text and splits what remains on blank lines.
func (r SkipRules) Split(text string) ([]Block, error) {
	lines := strings.Split(NormalizeNewlines(text), "\n")

	if r.StartMarker != "" {
		start := -1
		marker := strings.ToLower(r.StartMarker)
		for i, l := range lines {
			if strings.Contains(strings.ToLower(l), marker) {
				start = i
				break
			}
		}
		switch {
		case start >= 0 && r.SkipMarker:
			lines = lines[start+1:]
		case start >= 0:
			lines = lines[start:]
		case !r.MarkerOptional:
			return nil, fmt.Errorf("%w: %q", ErrMissingStartMarker, r.StartMarker)
		}
	}

	var (
		blocks  []Block
		current []string
	)
	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, Block{Index: len(blocks), Lines: current})
			current = nil
		}
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			flush()
			continue
		}
		if r.drop(line) {
			continue
		}
		if hasAnyPrefix(line, r.BreakPrefix) {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return blocks, nil
}

func (r SkipRules) drop(line string) bool {
	lower := strings.ToLower(line)
	for _, s := range r.DropExact {
		if lower == strings.ToLower(s) {
			return true
		}
	}
	for _, s := range r.DropContains {
		if strings.Contains(lower, strings.ToLower(s)) {
			return true
		}
	}
	return hasAnyPrefix(line, r.DropPrefix)
}

func hasAnyPrefix(line string, prefixes []string) bool {
	lower := strings.ToLower(line)
	for _, p := range prefixes {
		if strings.HasPrefix(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}
