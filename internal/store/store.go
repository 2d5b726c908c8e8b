// Package store contains the persistence layer for the Wanderlust API.
//
// Persistence is deliberately a key-value blob: the whole trip collection is
// serialized as one JSON value under a single key and rewritten in full on
// every mutation. There is no transactionality, no partial write, and no
// schema versioning. BlobStore is the only contract the rest of the system
// sees; file, in-memory, and Postgres implementations live here.
package store

import "context"

// Storage keys. Each logical dataset gets exactly one key; every write
// replaces the entire value under it.
const (
	// TripsKey holds the serialized []domain.Trip collection.
	TripsKey = "travel-trips"
	// ExpensesKey holds the serialized per-trip expense map.
	ExpensesKey = "travel-expenses"
)

// BlobStore is the durable key-value contract consumed by the service layer.
//
// Read returns (nil, nil) when no value exists for the key — absence is not
// an error. Write replaces the entire value. Implementations must not
// interpret the bytes.
type BlobStore interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, value []byte) error
}
