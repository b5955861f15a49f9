package classify

import (
	"regexp"
	"strings"
)

// Rule recognizes one known title shape and returns its office and
// jurisdiction. Rules are tried in order; the first match wins.
type Rule struct {
	Name  string
	Match func(title string) (office, jurisdiction string, ok bool)
}

// Rewrite normalizes a title before any rule sees it.
type Rewrite func(title string) string

var (
	schoolDistrictOf = regexp.MustCompile(`(?i)\bSchool\s+District\s+of\s+([A-Za-z0-9 .\-']+)`)
	areaSuffix       = regexp.MustCompile(`(?i)\s*-\s*Area\s+.*$`)
)

// DefaultRewrites turns "School District of X" into "X School District" so
// it lines up with the reference jurisdiction names.
func DefaultRewrites() []Rewrite {
	return []Rewrite{
		func(t string) string {
			return schoolDistrictOf.ReplaceAllStringFunc(t, func(m string) string {
				name := schoolDistrictOf.FindStringSubmatch(m)[1]
				return strings.TrimSpace(areaSuffix.ReplaceAllString(name, "")) + " School District"
			})
		},
	}
}

var (
	columbusAlderDistrict = regexp.MustCompile(`(?i)^Alderperson\s+Columbus\s+District\s+(\d+)$`)
	portageAlderDistrict  = regexp.MustCompile(`(?i)^Alderperson\s+District\s+(\d+)$`)
)

// DefaultRules returns the county-level title rules for county, e.g.
// "Columbia County".
func DefaultRules(county string) []Rule {
	circuitCourt := county + " Circuit Court"

	rules := []Rule{
		{Name: "alderperson-columbus-district", Match: func(t string) (string, string, bool) {
			m := columbusAlderDistrict.FindStringSubmatch(t)
			if m == nil {
				return "", "", false
			}
			return "Alderperson District " + m[1], "City of Columbus", true
		}},
		{Name: "alderperson-portage-district", Match: func(t string) (string, string, bool) {
			m := portageAlderDistrict.FindStringSubmatch(t)
			if m == nil {
				return "", "", false
			}
			return "Alderperson District " + m[1], "City of Portage", true
		}},
		{Name: "school-board-member", Match: func(t string) (string, string, bool) {
			_, after, ok := cutFold(t, "School Board Member")
			if !ok {
				return "", "", false
			}
			return "School Board Member", after, true
		}},
		{Name: "county-supervisor", Match: func(t string) (string, string, bool) {
			if !hasPrefixFold(t, "County Supervisor") {
				return "", "", false
			}
			before, after, ok := cutFold(t, "District")
			if !ok {
				return t, county, true
			}
			return strings.TrimSpace(before + " District " + after), county, true
		}},
		{Name: "circuit-court-judge-branch", Match: func(t string) (string, string, bool) {
			if !hasPrefixFold(t, "Circuit Court Judge Branch") {
				return "", "", false
			}
			office, _, _ := cutFold(t, county)
			return office, circuitCourt, true
		}},
		{Name: "circuit-court-judge", Match: func(t string) (string, string, bool) {
			if !hasPrefixFold(t, "Circuit Court Judge") {
				return "", "", false
			}
			return "Circuit Court Judge", circuitCourt, true
		}},
		{Name: "sanitary-district-commissioner", Match: prefixOffice("Sanitary District Commissioner")},
		{Name: "municipal-judge", Match: func(t string) (string, string, bool) {
			if !hasPrefixFold(t, "Municipal Judge") {
				return "", "", false
			}
			if !hasSuffixFold(t, "Portage") && !hasSuffixFold(t, "Eastern") {
				return "", "", false
			}
			_, after, _ := cutFold(t, "Municipal Judge")
			return "Multi-jurisdictional Judge", after + " Multi-jurisdiction", true
		}},
		{Name: "multi-jurisdictional-judge", Match: func(t string) (string, string, bool) {
			if !hasPrefixFold(t, "Multi-jurisdictional Judge") {
				return "", "", false
			}
			_, after, _ := cutFold(t, "Multi-jurisdictional Judge")
			return "Multi-jurisdictional Judge", after + " Multi-jurisdiction", true
		}},
		{Name: "alderperson-lodi", Match: func(t string) (string, string, bool) {
			if !strings.EqualFold(t, "Alderperson City of Lodi") {
				return "", "", false
			}
			return "Alderperson", "City of Lodi", true
		}},
		{Name: "alderperson", Match: func(t string) (string, string, bool) {
			before, after, ok := cutFold(t, "Alderperson")
			if !ok || before == "" {
				return "", "", false
			}
			return strings.TrimSpace("Alderperson " + after), before, true
		}},
	}

	for _, office := range []string{"Clerk of Circuit Court", "County Clerk", "County Treasurer", "District Attorney", "Register of Deeds", "Sheriff"} {
		rules = append(rules, countyOffice(office, office, county))
	}
	return append(rules, countyOffice("Treasurer", "County Treasurer", county))
}

func prefixOffice(office string) func(string) (string, string, bool) {
	return func(t string) (string, string, bool) {
		if !hasPrefixFold(t, office) {
			return "", "", false
		}
		_, after, _ := cutFold(t, office)
		return office, after, true
	}
}

func countyOffice(prefix, office, county string) Rule {
	return Rule{
		Name: "county-office-" + strings.ToLower(strings.ReplaceAll(prefix, " ", "-")),
		Match: func(t string) (string, string, bool) {
			if !hasPrefixFold(t, prefix) {
				return "", "", false
			}
			return office, county, true
		},
	}
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func hasSuffixFold(s, suffix string) bool {
	return len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}

// cutFold is strings.Cut with ASCII case folding; both halves are trimmed.
func cutFold(s, sep string) (before, after string, found bool) {
	i := strings.Index(strings.ToLower(s), strings.ToLower(sep))
	if i < 0 {
		return strings.TrimSpace(s), "", false
	}
	return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+len(sep):]), true
}
