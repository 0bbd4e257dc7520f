package domain

// Grouped accumulates candidates per category in classification order.
// Each category holds at most its cap; Other has a cap of its own.
type Grouped struct {
	categoryCap int
	otherCap    int
	groups      map[Category][]Candidate
}

// NewGrouped builds an empty accumulator with the given caps.
func NewGrouped(categoryCap, otherCap int) *Grouped {
	return &Grouped{
		categoryCap: categoryCap,
		otherCap:    otherCap,
		groups:      map[Category][]Candidate{},
	}
}

// Assign files the candidate under the category. Labels outside the closed
// set re-route to Other. A candidate arriving at a full group is dropped;
// the return value reports whether it was kept.
func (g *Grouped) Assign(candidate Candidate, category Category) bool {
	if ParseCategory(string(category)) != category {
		category = CategoryOther
	}

	limit := g.categoryCap
	if category == CategoryOther {
		limit = g.otherCap
	}

	if len(g.groups[category]) >= limit {
		return false
	}

	g.groups[category] = append(g.groups[category], candidate)
	return true
}

// Items returns the candidates filed under the category, in insertion order.
func (g *Grouped) Items(category Category) []Candidate {
	return g.groups[category]
}

// Total counts candidates across all groups.
func (g *Grouped) Total() int {
	total := 0
	for _, items := range g.groups {
		total += len(items)
	}
	return total
}

// Empty reports whether no candidate was kept at all.
func (g *Grouped) Empty() bool {
	return g.Total() == 0
}
