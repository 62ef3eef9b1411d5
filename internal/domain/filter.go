package domain

import "strings"

// FilterState holds the active search and facet selections for a listing
// page session. An empty facet imposes no constraint (pass-through), never
// "match nothing".
type FilterState struct {
	Query       string   // case-insensitive substring match
	Categories  []string // OR'd within the facet
	Tags        []string // OR'd within the facet
	PriceRanges []string // bucket labels, e.g. "₹0-₹10,000", OR'd
}

// IsZero reports whether no constraint is active.
func (f FilterState) IsZero() bool {
	return strings.TrimSpace(f.Query) == "" &&
		len(f.Categories) == 0 &&
		len(f.Tags) == 0 &&
		len(f.PriceRanges) == 0
}

// Predicate is a boolean test over a canonical record.
type Predicate func(*Record) bool

// BuildPredicate compiles a filter state into a single predicate.
//
// Semantics: facets combine with AND, selections within a facet with OR.
// Text matching is a case-insensitive substring test over title, route,
// description, location and categories; a whitespace-only query matches
// everything. A record whose price cannot be parsed never matches an active
// price facet.
//
// All selections are parsed once here, not per record.
func BuildPredicate(f FilterState) Predicate {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	categorySet := tokenSet(f.Categories)
	tagSet := tokenSet(f.Tags)

	priceFacetActive := len(f.PriceRanges) > 0
	ranges := make([]PriceRange, 0, len(f.PriceRanges))
	for _, label := range f.PriceRanges {
		if pr, ok := ParsePriceRange(label); ok {
			ranges = append(ranges, pr)
		}
	}

	return func(r *Record) bool {
		if r == nil {
			return false
		}

		if query != "" && !strings.Contains(r.searchText(), query) {
			return false
		}

		if len(categorySet) > 0 && !anyInSet(r.CategoryTokens(), categorySet) {
			return false
		}

		if len(tagSet) > 0 && !anyInSet(r.TagTokens(), tagSet) {
			return false
		}

		if priceFacetActive {
			amount, ok := r.PriceAmount()
			if !ok {
				return false
			}
			matched := false
			for _, pr := range ranges {
				if pr.Contains(amount) {
					matched = true
					break
				}
			}
			if !matched {
				return false
			}
		}

		return true
	}
}

// Filter applies a predicate, preserving input order.
func Filter(records []*Record, pred Predicate) []*Record {
	out := make([]*Record, 0, len(records))
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// tokenSet lower-cases and trims values into a membership set.
func tokenSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range lowerTokens(values) {
		set[v] = struct{}{}
	}
	return set
}

// anyInSet reports whether any token is a member of the set.
func anyInSet(tokens []string, set map[string]struct{}) bool {
	for _, t := range tokens {
		if _, ok := set[t]; ok {
			return true
		}
	}
	return false
}
