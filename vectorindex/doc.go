// Package vectorindex defines the boundary to the vector index that stores
// track and segment embeddings.
//
// SongChain never owns the index; it talks to one through the Index
// interface. Two implementations ship with the library:
//
//   - MemoryIndex: an exact in-process index for tests, examples and
//     embedded use
//   - chroma.Client: a HTTP client for a Chroma server (subpackage)
//
// Queries carry a Where predicate, a conjunction of field clauses built with
// Eq, Ne, Gt, Gte, Lt, Lte and In. PointLookup wraps Index.Get with the
// bounded retry used for single-record reads: transient upstream errors are
// retried with linear backoff and an exhausted lookup reports the record as
// absent rather than failing the caller.
package vectorindex
