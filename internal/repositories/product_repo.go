package repositories

import (
	"context"
	"errors"

	"catalogseed/internal/models"
)

var (
	// ErrConnection marks failures to reach or authenticate to the store.
	ErrConnection = errors.New("store connection failed")
	// ErrWrite marks a store rejecting the bulk insert.
	ErrWrite = errors.New("store rejected write")
)

// ProductRepository defines the write side of a product store.
type ProductRepository interface {
	// InsertMany writes products in a single bulk operation and returns the
	// generated identifiers in insertion order.
	InsertMany(ctx context.Context, products []models.Product) ([]string, error)
	// Close releases the underlying connection.
	Close(ctx context.Context) error
	// Target names the destination, e.g. "test/products".
	Target() string
}

// Opener acquires a ProductRepository for a single seeding run.
type Opener func(ctx context.Context) (ProductRepository, error)

// ErrorKind names the taxonomy bucket of err for diagnostics.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConnection):
		return "connection"
	case errors.Is(err, ErrWrite):
		return "write"
	default:
		return "unknown"
	}
}
