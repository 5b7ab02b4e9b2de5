package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ridwanfathin/pantry-receipt-service/internal/domain"
)

// PostgresPantryRepository implements PantryRepository using PostgreSQL
type PostgresPantryRepository struct {
	db *pgxpool.Pool
}

// NewPostgresPantryRepository creates a new PostgreSQL pantry repository
func NewPostgresPantryRepository(db *pgxpool.Pool) *PostgresPantryRepository {
	return &PostgresPantryRepository{
		db: db,
	}
}

// ListRecords returns all pantry records ordered by id. The ordering is part
// of the contract: reconciliation is first-match over the snapshot, so the
// snapshot has to come back in the same order every call.
func (r *PostgresPantryRepository) ListRecords(ctx context.Context) ([]domain.PantryRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name
		FROM pantry_records
		ORDER BY id
	`)
	if err != nil {
		return nil, &RepositoryError{
			Op:  "list_pantry_records",
			Err: fmt.Errorf("failed to query pantry records: %w", err),
		}
	}
	defer rows.Close()

	records := []domain.PantryRecord{}
	for rows.Next() {
		var record domain.PantryRecord
		if err := rows.Scan(&record.ID, &record.Name); err != nil {
			return nil, &RepositoryError{
				Op:  "list_pantry_records",
				Err: fmt.Errorf("failed to scan pantry record: %w", err),
			}
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, &RepositoryError{
			Op:  "list_pantry_records",
			Err: fmt.Errorf("error iterating pantry records: %w", err),
		}
	}

	return records, nil
}
