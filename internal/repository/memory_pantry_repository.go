package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/ridwanfathin/pantry-receipt-service/internal/domain"
)

// MemoryPantryRepository is an in-memory PantryRepository used for tests and
// store-less development runs. Snapshots come back sorted by record ID so
// reconciliation order stays stable, matching the Postgres implementation.
type MemoryPantryRepository struct {
	mutex   sync.RWMutex
	records []domain.PantryRecord
}

// NewMemoryPantryRepository creates an in-memory pantry repository seeded
// with the given records.
func NewMemoryPantryRepository(records []domain.PantryRecord) *MemoryPantryRepository {
	repo := &MemoryPantryRepository{}
	repo.SetRecords(records)
	return repo
}

// ListRecords returns a copy of the current snapshot ordered by id
func (r *MemoryPantryRepository) ListRecords(ctx context.Context) ([]domain.PantryRecord, error) {
	select {
	case <-ctx.Done():
		return nil, &RepositoryError{
			Op:  "list_pantry_records",
			Err: ctx.Err(),
		}
	default:
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	snapshot := make([]domain.PantryRecord, len(r.records))
	copy(snapshot, r.records)
	return snapshot, nil
}

// SetRecords replaces the stored snapshot
func (r *MemoryPantryRepository) SetRecords(records []domain.PantryRecord) {
	sorted := make([]domain.PantryRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})

	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.records = sorted
}
