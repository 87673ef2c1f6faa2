package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aurapass/kiosk-services/internal/scansvc/models"
)

type AdminStore struct {
	db *pgxpool.Pool
}

func NewAdminStore(db *pgxpool.Pool) *AdminStore {
	return &AdminStore{db: db}
}

// ListAll returns every admin account; they all receive scan notifications.
func (s *AdminStore) ListAll(ctx context.Context) ([]models.Admin, error) {
	query := `
		SELECT id, name, email, created_at
		FROM users
		ORDER BY id
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	defer rows.Close()

	var admins []models.Admin
	for rows.Next() {
		var a models.Admin
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan admin row: %w", err)
		}
		admins = append(admins, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read admin rows: %w", err)
	}

	return admins, nil
}
