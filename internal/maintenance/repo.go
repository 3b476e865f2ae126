package maintenance

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BielWaki/loja-backend/pkg/db/models"
)

// Repository handles maintenance order persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to maintenance operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateWithTx persists a new order row inside the transaction, so the order
// and its optional intake movement commit together.
func (r *Repository) CreateWithTx(tx *gorm.DB, order *models.MaintenanceOrder) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if order == nil {
		return fmt.Errorf("order is required")
	}
	return tx.Create(order).Error
}

// FindByID loads an order by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.MaintenanceOrder, error) {
	var order models.MaintenanceOrder
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns orders matching the filters, newest first.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]models.MaintenanceOrder, error) {
	query := r.db.WithContext(ctx).Model(&models.MaintenanceOrder{})
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Instrument != nil {
		query = query.Where("instrument_id = ?", *filters.Instrument)
	}

	var orders []models.MaintenanceOrder
	if err := query.Order("created_at DESC, id ASC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Update saves the provided order.
func (r *Repository) Update(ctx context.Context, order *models.MaintenanceOrder) error {
	if order == nil {
		return fmt.Errorf("order is required")
	}
	return r.db.WithContext(ctx).Save(order).Error
}

// Delete removes the order row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.MaintenanceOrder{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
