package instruments

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BielWaki/loja-backend/pkg/db/models"
)

// Repository handles instrument persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to instrument operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new instrument row.
func (r *Repository) Create(ctx context.Context, instrument *models.Instrument) error {
	if instrument == nil {
		return fmt.Errorf("instrument is required")
	}
	return r.db.WithContext(ctx).Create(instrument).Error
}

// FindByID loads an instrument by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Instrument, error) {
	var instrument models.Instrument
	if err := r.db.WithContext(ctx).First(&instrument, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &instrument, nil
}

// List returns instruments matching the filters, ordered by name.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]models.Instrument, error) {
	query := r.db.WithContext(ctx).Model(&models.Instrument{})
	if filters.Category != nil {
		query = query.Where("category = ?", *filters.Category)
	}
	if filters.Supplier != nil {
		query = query.Where("supplier_id = ?", *filters.Supplier)
	}
	if filters.Search != "" {
		query = query.Where("name LIKE ?", "%"+filters.Search+"%")
	}

	var instruments []models.Instrument
	if err := query.Order("name ASC, id ASC").Find(&instruments).Error; err != nil {
		return nil, err
	}
	return instruments, nil
}

// Update saves the provided instrument.
func (r *Repository) Update(ctx context.Context, instrument *models.Instrument) error {
	if instrument == nil {
		return fmt.Errorf("instrument is required")
	}
	return r.db.WithContext(ctx).Save(instrument).Error
}

// Delete removes the instrument row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Instrument{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountMovements returns how many stock movements reference the instrument.
func (r *Repository) CountMovements(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.StockMovement{}).
		Where("instrument_id = ?", id).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
