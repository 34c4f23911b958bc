package factors

import (
	"sort"
	"strings"
)

// SearchOptions filters and bounds a Search call.
type SearchOptions struct {
	// Source restricts results to one provenance, when non-empty.
	Source Source

	// Category restricts results to factors carrying the tag, when non-empty.
	Category string

	// Limit caps the number of results. Zero or negative means no cap.
	Limit int
}

// searchRank orders search hits. Lower ranks sort first; exact id matches
// outrank every substring match.
const (
	rankExactID = -1
	rankNoMatch = 1 << 30
)

// Search returns factors matching the query, ordered by relevance: exact id
// match first, then earliest substring match position across id, name, and
// category tags, then name lexical order, with ties broken by id so the
// ordering is deterministic.
//
// The query matches case-insensitively. An empty query returns all factors
// passing the filters, ordered by name then id.
func (r *Registry) Search(query string, opts SearchOptions) []Factor {
	needle := strings.ToLower(strings.TrimSpace(query))

	type hit struct {
		factor *Factor
		rank   int
	}

	var hits []hit
	for i := range r.factors {
		f := &r.factors[i]
		if opts.Source != "" && f.Source != opts.Source {
			continue
		}
		if opts.Category != "" && !f.HasCategory(opts.Category) {
			continue
		}

		rank := 0
		if needle != "" {
			rank = matchRank(f, needle)
			if rank == rankNoMatch {
				continue
			}
		}
		hits = append(hits, hit{factor: f, rank: rank})
	}

	sort.Slice(hits, func(i, j int) bool {
		a, b := hits[i], hits[j]
		if a.rank != b.rank {
			return a.rank < b.rank
		}
		if a.factor.Name != b.factor.Name {
			return a.factor.Name < b.factor.Name
		}
		return a.factor.ID < b.factor.ID
	})

	if opts.Limit > 0 && len(hits) > opts.Limit {
		hits = hits[:opts.Limit]
	}

	out := make([]Factor, len(hits))
	for i, h := range hits {
		out[i] = *h.factor
	}
	return out
}

// matchRank computes the relevance rank of a factor against a lowercased
// query: rankExactID for an exact id match, otherwise the earliest substring
// position found in the id, name, or category tags.
func matchRank(f *Factor, needle string) int {
	id := strings.ToLower(f.ID)
	if id == needle {
		return rankExactID
	}

	rank := rankNoMatch
	if pos := strings.Index(id, needle); pos >= 0 && pos < rank {
		rank = pos
	}
	if pos := strings.Index(strings.ToLower(f.Name), needle); pos >= 0 && pos < rank {
		rank = pos
	}
	for _, category := range f.Categories {
		if pos := strings.Index(strings.ToLower(category), needle); pos >= 0 && pos < rank {
			rank = pos
		}
	}
	return rank
}
