// Package classify splits a race title into an office name and a
// jurisdiction name.
package classify

import (
	"sort"
	"strings"

	"github.com/cocodems/elections/refdata"
)

// DefaultMarkers start the jurisdiction part of a title when no rule or
// reference entry matched.
var DefaultMarkers = []string{"City of", "Town of", "Village of", "School District"}

// Result is a classified title. Rule names the step that produced it.
type Result struct {
	Office       string
	Jurisdiction string
	Rule         string
}

// Options configures a Classifier. Zero values fall back to the defaults for
// the named county.
type Options struct {
	County        string
	Rules         []Rule
	Rewrites      []Rewrite
	Markers       []string
	Jurisdictions []string
	Offices       []string
	Standard      refdata.StandardNames
	Alders        refdata.Alders
}

// Classifier maps race titles to (office, jurisdiction). It is safe for
// concurrent use once built.
type Classifier struct {
	rules         []Rule
	rewrites      []Rewrite
	markers       []string
	jurisdictions []string
	offices       []string
	standard      refdata.StandardNames
	alders        refdata.Alders
}

// New builds a Classifier from opts.
func New(opts Options) *Classifier {
	if opts.County == "" {
		opts.County = "Columbia County"
	}
	c := &Classifier{
		rules:         opts.Rules,
		rewrites:      opts.Rewrites,
		markers:       opts.Markers,
		jurisdictions: longestFirst(opts.Jurisdictions),
		offices:       longestFirst(opts.Offices),
		standard:      opts.Standard,
		alders:        opts.Alders,
	}
	if c.rules == nil {
		c.rules = DefaultRules(opts.County)
	}
	if c.rewrites == nil {
		c.rewrites = DefaultRewrites()
	}
	if c.markers == nil {
		c.markers = DefaultMarkers
	}
	return c
}

// Classify splits title. When nothing recognizes it, the whole title becomes
// the office and the jurisdiction is empty.
func (c *Classifier) Classify(title string) Result {
	title = strings.Join(strings.Fields(title), " ")
	for _, rw := range c.rewrites {
		title = rw(title)
	}
	return c.standardize(c.split(title))
}

// ClassifyCandidate is Classify with the alderperson table consulted first:
// an "Alderperson" race whose candidate is listed takes that city as its
// jurisdiction.
func (c *Classifier) ClassifyCandidate(title, candidate string) Result {
	if hasPrefixFold(strings.TrimSpace(title), "Alderperson") {
		if city, ok := c.alders.Lookup(candidate); ok {
			return c.standardize(Result{Office: strings.TrimSpace(title), Jurisdiction: city, Rule: "alders-table"})
		}
	}
	return c.Classify(title)
}

func (c *Classifier) split(title string) Result {
	for _, r := range c.rules {
		if office, jur, ok := r.Match(title); ok {
			return Result{Office: office, Jurisdiction: jur, Rule: r.Name}
		}
	}

	if jur, rest, ok := c.matchJurisdiction(title); ok {
		office := rest
		if o, ok := matchAny(c.offices, rest); ok {
			office = o
		}
		if office == "" {
			office = title
		}
		return Result{Office: office, Jurisdiction: jur, Rule: "reference"}
	}

	lower := strings.ToLower(title)
	for _, m := range c.markers {
		i := strings.Index(lower, strings.ToLower(m))
		if i < 0 {
			continue
		}
		office := strings.TrimSpace(title[:i])
		return Result{Office: office, Jurisdiction: strings.TrimSpace(title[i:]), Rule: "marker"}
	}

	return Result{Office: title, Rule: "fallback"}
}

// matchJurisdiction prefers a reference jurisdiction at the start of the
// title, then one anywhere in it. rest is the title with it removed.
func (c *Classifier) matchJurisdiction(title string) (jur, rest string, ok bool) {
	lower := strings.ToLower(title)
	for _, j := range c.jurisdictions {
		if strings.HasPrefix(lower, strings.ToLower(j)) {
			return j, trimSeparators(title[len(j):]), true
		}
	}
	for _, j := range c.jurisdictions {
		if i := strings.Index(lower, strings.ToLower(j)); i >= 0 {
			return j, trimSeparators(title[:i] + " " + title[i+len(j):]), true
		}
	}
	return "", "", false
}

func (c *Classifier) standardize(r Result) Result {
	r.Office = c.standard.Standardize(r.Office)
	r.Jurisdiction = c.standard.Standardize(r.Jurisdiction)
	return r
}

func trimSeparators(s string) string {
	return strings.Join(strings.Fields(strings.Trim(s, " -–—,:\t")), " ")
}

func matchAny(candidates []string, s string) (string, bool) {
	lower := strings.ToLower(s)
	for _, c := range candidates {
		if strings.Contains(lower, strings.ToLower(c)) {
			return c, true
		}
	}
	return "", false
}

func longestFirst(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}
