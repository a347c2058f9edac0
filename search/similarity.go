package search

import "math"

// cosineSimilarity computes dot(q, v) / (||q|| * ||v||). Zero-norm or
// mismatched vectors score 0, and negative similarities are clamped to 0 so
// scores stay comparable with lexical scores in [0, 1].
func cosineSimilarity(q, v []float32) float32 {
	if len(q) == 0 || len(q) != len(v) {
		return 0
	}

	var dot, qNorm, vNorm float64
	for i := range q {
		dot += float64(q[i]) * float64(v[i])
		qNorm += float64(q[i]) * float64(q[i])
		vNorm += float64(v[i]) * float64(v[i])
	}
	if qNorm == 0 || vNorm == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(qNorm) * math.Sqrt(vNorm))
	if sim < 0 {
		return 0
	}
	if sim > 1 {
		return 1
	}
	return float32(sim)
}
