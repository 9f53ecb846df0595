// Package rerank reorders selection candidates by fusing the index's
// vector ranking with a lexical ranking over catalog item names. The
// vector scan is strong on meaning and weak on exact wording; the fusion
// pulls literal name matches ("oat milk" the product for "oat milk" the
// term) back to the front without discarding semantic neighbors.
package rerank

import (
	"context"
	"sort"
	"strings"

	"github.com/chop-n-shop/pantry/internal/domain"
	"github.com/chop-n-shop/pantry/internal/index"
)

// rrfK is the Reciprocal Rank Fusion constant (standard value from Cormack et al. 2009).
const rrfK = 60

// NameReader resolves candidate identifiers to catalog rows.
type NameReader interface {
	Get(ctx context.Context, id string) (domain.ItemLookup, error)
}

// Fuser implements the selection reranker via RRF over two rankings:
// the incoming candidate order and a token-overlap ranking of item names
// against the query.
type Fuser struct {
	catalog NameReader
}

// New creates a Fuser.
func New(catalog NameReader) *Fuser {
	return &Fuser{catalog: catalog}
}

// Rerank fuses the vector ranking with the lexical ranking.
// score(c) = sum of 1/(k + rank_i(c)) over the rankings c appears in;
// candidates absent from the lexical ranking keep only their vector term,
// so a query with no literal matches reproduces the input order.
func (f *Fuser) Rerank(
	ctx context.Context, query string, candidates []index.Candidate,
) ([]index.Candidate, error) {
	if len(candidates) < 2 {
		return candidates, nil
	}

	lexical := f.lexicalRanking(ctx, query, candidates)

	scores := make(map[string]float64, len(candidates))
	for rank, c := range candidates {
		scores[c.ID] = 1.0 / float64(rrfK+rank+1)
	}
	for rank, id := range lexical {
		scores[id] += 1.0 / float64(rrfK+rank+1)
	}

	fused := make([]index.Candidate, len(candidates))
	copy(fused, candidates)
	sort.SliceStable(fused, func(i, j int) bool {
		return scores[fused[i].ID] > scores[fused[j].ID]
	})
	return fused, nil
}

// lexicalRanking orders the subset of candidates whose item name shares
// tokens with the query, best overlap first. Lookup failures drop the
// candidate from this ranking only.
func (f *Fuser) lexicalRanking(ctx context.Context, query string, candidates []index.Candidate) []string {
	queryTokens := tokens(query)
	if len(queryTokens) == 0 {
		return nil
	}

	type scored struct {
		id      string
		overlap int
	}
	var matched []scored
	for _, c := range candidates {
		lookup, err := f.catalog.Get(ctx, c.ID)
		if err != nil || !lookup.Found {
			continue
		}
		if n := overlap(queryTokens, tokens(lookup.Item.Name)); n > 0 {
			matched = append(matched, scored{id: c.ID, overlap: n})
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].overlap > matched[j].overlap
	})

	ids := make([]string, len(matched))
	for i, m := range matched {
		ids[i] = m.id
	}
	return ids
}

func tokens(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(s)) {
		out[w] = struct{}{}
	}
	return out
}

func overlap(a, b map[string]struct{}) int {
	n := 0
	for w := range a {
		if _, ok := b[w]; ok {
			n++
		}
	}
	return n
}
