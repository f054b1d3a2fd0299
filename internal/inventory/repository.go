package inventory

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// DBPool matches the methods from *pgxpool.Pool that we use.
// This allows us to mock the database in tests.
type DBPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresSource loads the catalog from the catalog_items table.
// It only reads: reservations are applied to the in-memory Catalog.
type PostgresSource struct {
	pool DBPool
}

func NewPostgresSource(pool DBPool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

func (s *PostgresSource) Load(ctx context.Context) ([]Item, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, aliases, available, location
		FROM catalog_items
		ORDER BY position, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Aliases, &it.Available, &it.Location); err != nil {
			return nil, fmt.Errorf("scan catalog row: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog: %w", err)
	}
	return items, nil
}
