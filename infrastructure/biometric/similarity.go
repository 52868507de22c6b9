package biometric

import (
	"fmt"
	"math"
)

// Similarity computes the cosine similarity between two face descriptors and
// maps the raw [-1,1] range linearly onto [0,1] so match thresholds read as
// probabilities. Both vectors must be non-zero and of equal length; anything
// else means a malformed descriptor slipped past validation upstream, which
// is a caller bug, so this panics instead of returning an error.
func Similarity(a []float64, b []float64) float64 {
	if len(a) != len(b) {
		panic(fmt.Sprintf("descriptor length mismatch: %d vs %d", len(a), len(b)))
	}
	if len(a) == 0 {
		panic("empty descriptor")
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	magnitude := math.Sqrt(normA) * math.Sqrt(normB)
	if magnitude == 0 {
		panic("zero-magnitude descriptor")
	}

	cosine := dot / magnitude
	// guard against float drift pushing cosine marginally outside [-1,1]
	cosine = math.Max(-1, math.Min(1, cosine))
	return (cosine + 1) / 2
}
