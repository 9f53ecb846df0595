// Package index implements the catalog's approximate-retrieval structure:
// a flat nearest-neighbor index over item embeddings searched by brute
// force under squared L2 distance. The index is built once from the
// catalog, is read-only afterwards, and is shared by reference across
// concurrent queries. Catalog changes require a full rebuild; there is no
// incremental update.
package index

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/chop-n-shop/pantry/internal/domain"
)

// Entry is one catalog item's identifier and embedding vector, the unit
// of an index build.
type Entry struct {
	ID     string
	Vector []float32
}

// Candidate is one query result. Similarity is 1 − distance, reported for
// display only; ranking uses the distance ordering.
type Candidate struct {
	ID         string
	Distance   float32
	Similarity float32
}

// Index holds stacked item vectors and the parallel identifier list.
type Index struct {
	dim     int
	ids     []string
	vectors [][]float32
	embed   domain.Embedder
	logger  *zap.Logger
}

// Build stacks the entries into an index. Every vector must share one
// dimension; a mismatch aborts the build. Items without embeddings never
// reach Build and stay unreachable until re-embedded and rebuilt.
func Build(entries []Entry, embed domain.Embedder, logger *zap.Logger) (*Index, error) {
	idx := &Index{embed: embed, logger: logger}

	for _, e := range entries {
		if len(e.Vector) == 0 {
			continue
		}
		if idx.dim == 0 {
			idx.dim = len(e.Vector)
		}
		if len(e.Vector) != idx.dim {
			return nil, fmt.Errorf("item %s has dimension %d, index has %d: %w",
				e.ID, len(e.Vector), idx.dim, domain.ErrVectorDimMismatch)
		}
		idx.ids = append(idx.ids, e.ID)
		idx.vectors = append(idx.vectors, e.Vector)
	}

	logger.Info("Catalog index built",
		zap.Int("items", len(idx.ids)),
		zap.Int("dimensions", idx.dim),
	)
	return idx, nil
}

// Query embeds the text and returns up to topK candidates, nearest first.
// An embedding failure degrades to an empty candidate list: "no
// candidates" is a normal outcome for callers, not an error.
func (x *Index) Query(ctx context.Context, text string, topK int) []Candidate {
	if len(x.ids) == 0 || topK <= 0 {
		return nil
	}

	res, err := x.embed.Embed(ctx, text)
	if err != nil {
		x.logger.Warn("Query embedding failed, returning no candidates",
			zap.String("query", text), zap.Error(err))
		return nil
	}
	if len(res.Embedding) != x.dim {
		x.logger.Warn("Query embedding dimension mismatch",
			zap.Int("got", len(res.Embedding)), zap.Int("want", x.dim))
		return nil
	}

	candidates := make([]Candidate, len(x.ids))
	for i, vec := range x.vectors {
		d := sqL2(res.Embedding, vec)
		candidates[i] = Candidate{ID: x.ids[i], Distance: d, Similarity: 1 - d}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Distance < candidates[j].Distance
	})

	if len(candidates) > topK {
		candidates = candidates[:topK]
	}
	return candidates
}

// Len returns the number of indexed items.
func (x *Index) Len() int { return len(x.ids) }

// Dim returns the shared vector dimension, zero for an empty index.
func (x *Index) Dim() int { return x.dim }

// sqL2 is the squared Euclidean distance. The square root is skipped: it
// does not change the ordering.
func sqL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
