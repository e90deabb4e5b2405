package offerscan

// Similarity computes a normalized name-similarity score in [0,1].
// The merger treats the exact algorithm as pluggable: token overlap,
// edit-distance ratio, and embedding-cosine implementations must be
// interchangeable without touching the clustering logic. Implementations
// must be deterministic and symmetric.
type Similarity interface {
	Score(a, b string) float64
}
