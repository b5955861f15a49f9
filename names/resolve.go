package names

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cocodems/elections/refdata"
)

// Pass identifies which matching rule found a person.
type Pass int

const (
	PassNone Pass = iota
	PassExactMiddle
	PassMiddleInitial
	PassFirstLast
)

func (p Pass) String() string {
	switch p {
	case PassExactMiddle:
		return "exact-middle"
	case PassMiddleInitial:
		return "middle-initial"
	case PassFirstLast:
		return "first-last"
	default:
		return "none"
	}
}

// Query is one matching attempt. Name fields are already normalized with Key.
type Query struct {
	Pass   Pass
	First  string
	Middle string
	Last   string
}

// Finder looks up a person for one query. Implementations return the lowest
// matching contact ID so repeated runs agree.
type Finder interface {
	MatchIndividual(ctx context.Context, q Query) (contactID int64, found bool, err error)
}

// Resolution is the outcome of resolving one display name.
type Resolution struct {
	Parts
	ContactID *int64
	Pass      Pass
	// Standardized is set when the match came from the standard-names table.
	Standardized string
}

// Resolver maps display names to existing contact IDs.
type Resolver struct {
	finder   Finder
	splitter Splitter
	standard refdata.StandardNames
	log      *zap.Logger
}

// NewResolver builds a Resolver. A nil finder only splits names.
func NewResolver(finder Finder, special refdata.SpecialNames, standard refdata.StandardNames, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{finder: finder, splitter: Splitter{Special: special}, standard: standard, log: log}
}

// Split exposes the resolver's splitter.
func (r *Resolver) Split(display string) Parts { return r.splitter.Split(display) }

// Resolve splits display and looks it up. When the name as written finds no
// one, the standard-names spelling is tried; the parts returned are still
// those of display. A miss is not an error.
func (r *Resolver) Resolve(ctx context.Context, display string) (Resolution, error) {
	parts := r.splitter.Split(display)
	res := Resolution{Parts: parts}
	if r.finder == nil {
		return res, nil
	}

	id, pass, err := r.Match(ctx, parts)
	if err != nil {
		return res, fmt.Errorf("match %q: %w", display, err)
	}
	if pass != PassNone {
		res.ContactID, res.Pass = &id, pass
		return res, nil
	}

	std, ok := r.standard.Lookup(display)
	if !ok || refdata.NameKey(std) == refdata.NameKey(display) {
		return res, nil
	}
	stdParts := r.splitter.Split(std)
	id, pass, err = r.Match(ctx, stdParts)
	if err != nil {
		return res, fmt.Errorf("match %q: %w", std, err)
	}
	if pass != PassNone {
		r.log.Debug("matched via standard name", zap.String("name", display), zap.String("standard", std))
		res.ContactID, res.Pass, res.Standardized = &id, pass, std
		return res, nil
	}
	return res, nil
}

// Match runs the passes in order: exact middle name, middle initial, then
// first and last. The middle passes only run when p has a middle name.
func (r *Resolver) Match(ctx context.Context, p Parts) (int64, Pass, error) {
	first, middle, last := Key(p.First), Key(p.Middle), Key(p.Last)
	if first == "" || last == "" {
		return 0, PassNone, nil
	}

	var passes []Query
	if middle != "" {
		passes = append(passes,
			Query{Pass: PassExactMiddle, First: first, Middle: middle, Last: last},
			Query{Pass: PassMiddleInitial, First: first, Middle: middle[:1], Last: last},
		)
	}
	passes = append(passes, Query{Pass: PassFirstLast, First: first, Last: last})

	for _, q := range passes {
		id, ok, err := r.finder.MatchIndividual(ctx, q)
		if err != nil {
			return 0, PassNone, err
		}
		if ok {
			return id, q.Pass, nil
		}
	}
	return 0, PassNone, nil
}
