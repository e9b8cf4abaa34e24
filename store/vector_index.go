package store

import (
	"fmt"
	"math"
	"sort"
)

// SearchHit is one nearest-neighbor result: the position of the vector in
// the index and its cosine similarity to the query.
type SearchHit struct {
	Position int
	Score    float32
}

// VectorIndex is an immutable in-memory nearest-neighbor structure over one
// session's chunk embeddings, using brute-force cosine similarity. Entry i
// corresponds to chunk i of the session.
type VectorIndex struct {
	dimension int
	vectors   [][]float32
	norms     []float32
}

// BuildIndex constructs the index in one pass. All vectors must share the
// same dimension. An empty input yields a valid empty index.
func BuildIndex(vectors [][]float32) (*VectorIndex, error) {
	ix := &VectorIndex{}
	if len(vectors) == 0 {
		return ix, nil
	}
	ix.dimension = len(vectors[0])
	ix.vectors = make([][]float32, len(vectors))
	ix.norms = make([]float32, len(vectors))
	for i, v := range vectors {
		if len(v) != ix.dimension {
			return nil, fmt.Errorf("vector %d has dimension %d, expected %d", i, len(v), ix.dimension)
		}
		ix.vectors[i] = v
		ix.norms[i] = norm(v)
	}
	return ix, nil
}

// Len returns the number of indexed vectors.
func (ix *VectorIndex) Len() int { return len(ix.vectors) }

// Search returns the top-k entries by descending cosine similarity to query.
// Results are deterministic: ties are broken by ascending position. Searching
// an empty index returns an empty result, never an error.
func (ix *VectorIndex) Search(query []float32, k int) []SearchHit {
	if k <= 0 || len(ix.vectors) == 0 {
		return nil
	}
	qn := norm(query)
	hits := make([]SearchHit, len(ix.vectors))
	for i, v := range ix.vectors {
		hits[i] = SearchHit{Position: i, Score: cosine(v, query, ix.norms[i], qn)}
	}
	sort.Slice(hits, func(a, b int) bool {
		if hits[a].Score != hits[b].Score {
			return hits[a].Score > hits[b].Score
		}
		return hits[a].Position < hits[b].Position
	})
	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k]
}

func cosine(a, b []float32, an, bn float32) float32 {
	if an == 0 || bn == 0 {
		return 0
	}
	return dot(a, b) / (an * bn)
}

func dot(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float32
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

func norm(v []float32) float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return float32(math.Sqrt(sum))
}
