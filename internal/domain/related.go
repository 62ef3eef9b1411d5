package domain

// RelatedPolicy selects the ordering applied to the shared-category pool of
// the related-items selector.
//
// Blogs keep the pool in its original order so a post's related list reads
// as "more from this series". Tours and destinations shuffle it with a
// deterministic seed derived from the current record, so the widget looks
// varied but never reshuffles between renders of the same page.
type RelatedPolicy int

const (
	RelatedStable RelatedPolicy = iota
	RelatedShuffled
)

// DefaultRelatedCount is the widget size used by the listing pages.
const DefaultRelatedCount = 3

// PolicyForKind returns the related-items policy for a content kind.
func PolicyForKind(kind Kind) RelatedPolicy {
	if kind == KindBlog {
		return RelatedStable
	}
	return RelatedShuffled
}

// SelectRelated picks up to count records "similar" to current.
//
// Pools are tried in order until count is reached:
//
//  1. records sharing a category with current (ordered per policy)
//  2. records sharing at least one tag but no category (original order)
//  3. any remaining records (original order)
//
// The result never contains current itself and never contains duplicates.
// Fewer than count records are returned only when the universe minus
// current is smaller than count.
func SelectRelated(all []*Record, current *Record, count int, policy RelatedPolicy) []*Record {
	result := []*Record{}
	if current == nil || count <= 0 {
		return result
	}

	currentCategories := tokenSet(current.Categories)
	currentTags := tokenSet(current.Tags)

	var byCategory, byTag, rest []*Record
	seen := map[string]struct{}{current.ID: {}}

	for _, r := range all {
		if r == nil {
			continue
		}
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}

		switch {
		case anyInSet(r.CategoryTokens(), currentCategories):
			byCategory = append(byCategory, r)
		case anyInSet(r.TagTokens(), currentTags):
			byTag = append(byTag, r)
		default:
			rest = append(rest, r)
		}
	}

	if policy == RelatedShuffled {
		byCategory = shuffledCopy(byCategory, seedFromID(current.ID))
	}

	for _, pool := range [][]*Record{byCategory, byTag, rest} {
		for _, r := range pool {
			if len(result) == count {
				return result
			}
			result = append(result, r)
		}
	}

	return result
}

// seedFromID folds a record id into a numeric shuffle seed.
func seedFromID(id string) uint32 {
	var seed uint32
	for _, c := range id {
		seed = seed*31 + uint32(c)
	}
	return seed
}

// shuffledCopy returns a Fisher–Yates shuffle of records driven by a linear
// congruential generator, so identical inputs always produce identical
// orderings. math/rand is deliberately not used here: the output feeds
// render-time widgets that must stay stable within a session.
func shuffledCopy(records []*Record, seed uint32) []*Record {
	out := make([]*Record, len(records))
	copy(out, records)

	state := seed
	for i := len(out) - 1; i > 0; i-- {
		state = state*1664525 + 1013904223
		j := int(state % uint32(i+1))
		out[i], out[j] = out[j], out[i]
	}
	return out
}
