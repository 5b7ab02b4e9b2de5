package repository

import (
	"context"
	"fmt"

	"github.com/ridwanfathin/pantry-receipt-service/internal/domain"
)

// RepositoryError represents an error that occurred within a repository
type RepositoryError struct {
	// Op is the operation that failed
	Op string

	// Err is the underlying error
	Err error
}

// Error returns a string representation of the error
func (e *RepositoryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

// Unwrap returns the underlying error
func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// PantryRepository provides read access to the caller's existing pantry
// inventory. Implementations must return snapshots in a deterministic order
// so first-match reconciliation is stable across calls.
type PantryRepository interface {
	// ListRecords returns the current pantry snapshot.
	ListRecords(ctx context.Context) ([]domain.PantryRecord, error)
}
