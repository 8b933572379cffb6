// Package models holds the small value type returned by the core's
// query-facing API.
package models

// SearchResult is a single hit returned by a K-NN-SEARCH: the original
// insertion id, the item it was built from, and its distance to the query.
type SearchResult[T any, D any] struct {
	ID       int
	Item     T
	Distance D
}
