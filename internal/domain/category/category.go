package category

import "strings"

// Canonical room categories used for inventory aggregation.
const (
	Quad   = "quad"
	Triple = "triple"
	Double = "double"
	Suite  = "suite"
	Family = "family"
)

// rule maps trigger substrings onto a canonical category. Rules are evaluated
// in order and the first match wins, so "Triple Deluxe Suite" is a triple, not
// a suite. Keep this a slice: a map would lose the precedence.
type rule struct {
	canonical string
	patterns  []string
}

var rules = []rule{
	{Quad, []string{"quadrooms", "quadruple"}},
	{Triple, []string{"triplerooms", "triple"}},
	{Double, []string{"doublerooms", "double"}},
	{Suite, []string{"suite"}},
	{Family, []string{"familyrooms", "family"}},
}

// Normalize maps a free-form room-category label onto a canonical category.
// Matching is case-insensitive substring matching in rule order. A label that
// matches nothing is returned unchanged and acts as its own long-tail
// category; that is an escape hatch, not an error.
func Normalize(label string) string {
	lower := strings.ToLower(label)
	for _, r := range rules {
		for _, p := range r.patterns {
			if strings.Contains(lower, p) {
				return r.canonical
			}
		}
	}
	return label
}
