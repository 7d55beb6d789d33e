package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"blogicum/internal/models"
)

type LocationRepositoryImpl struct {
	db *sqlx.DB
}

func NewLocationRepository(db *sqlx.DB) *LocationRepositoryImpl {
	return &LocationRepositoryImpl{db: db}
}

func (r *LocationRepositoryImpl) Create(ctx context.Context, location *models.Location) error {
	query := `
		INSERT INTO locations (location_id, name, is_published, created_at)
		VALUES (:location_id, :name, :is_published, :created_at)
	`

	if location.LocationID == "" {
		location.LocationID = uuid.New().String()
	}
	if location.CreatedAt.IsZero() {
		location.CreatedAt = time.Now()
	}

	if _, err := r.db.NamedExecContext(ctx, query, location); err != nil {
		return fmt.Errorf("failed to create location: %w", err)
	}

	return nil
}

func (r *LocationRepositoryImpl) GetAllPublished(ctx context.Context) ([]models.Location, error) {
	query := `SELECT * FROM locations WHERE is_published = TRUE ORDER BY created_at`

	locations := []models.Location{}
	if err := r.db.SelectContext(ctx, &locations, query); err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}

	return locations, nil
}
