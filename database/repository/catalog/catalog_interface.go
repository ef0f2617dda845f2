package catalogRepo

import (
	"context"

	"fixly/models"
)

// CatalogRepository defines methods for service category reference
// data. Categories are seeded at startup and read-only afterwards.
type CatalogRepository interface {
	// GetByID retrieves a category by its unique ID.
	GetByID(ctx context.Context, id string) (*models.ServiceCategory, error)
	// GetAll returns every category, sorted by name.
	GetAll(ctx context.Context) ([]models.ServiceCategory, error)
	// Seed upserts the given categories by name.
	Seed(ctx context.Context, categories []models.ServiceCategory) error
}
