package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/helpdeskops/perf-api/internal/models"
)

// SubCategoryRepository reads the tsubcat difficulty point table.
type SubCategoryRepository struct {
	db *sqlx.DB
}

// NewSubCategoryRepository instantiates the repository.
func NewSubCategoryRepository(db *sqlx.DB) *SubCategoryRepository {
	return &SubCategoryRepository{db: db}
}

// List returns the whole point table. The table is small and slowly
// changing; callers load it once per request.
func (r *SubCategoryRepository) List(ctx context.Context) ([]models.SubCategory, error) {
	var categories []models.SubCategory
	if err := r.db.SelectContext(ctx, &categories, "SELECT id, name, points FROM tsubcat ORDER BY id"); err != nil {
		return nil, fmt.Errorf("query sub-categories: %w", err)
	}
	return categories, nil
}
