// Package distance provides vector distance calculations for the in-memory
// index and for callers that compare embeddings directly.
//
// # Supported Metrics
//
//   - MetricL2: Squared Euclidean distance
//   - MetricCosine: Cosine distance (1 - cosine similarity)
//   - MetricDot: Negative dot product
//
// Every metric reports smaller values for closer vectors, so results sorted
// ascending are ordered best-first.
//
// # Usage
//
//	dist := distance.SquaredL2(a, b)
//	cos := distance.CosineDistance(a, b)
package distance
