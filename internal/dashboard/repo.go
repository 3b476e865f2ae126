package dashboard

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BielWaki/loja-backend/pkg/db/models"
	"github.com/BielWaki/loja-backend/pkg/enums"
)

// Repository answers the aggregate queries behind the dashboard.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to dashboard queries.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CountInstruments returns the number of catalogued instruments.
func (r *Repository) CountInstruments(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Instrument{}).Count(&count).Error
	return count, err
}

// SumStockUnits returns the total units on hand across all instruments.
func (r *Repository) SumStockUnits(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Instrument{}).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	return total, err
}

// SumStockValue returns SUM(price * quantity) across the inventory.
func (r *Repository) SumStockValue(ctx context.Context) (decimal.Decimal, error) {
	var raw decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&models.Instrument{}).
		Select("SUM(price * quantity)").
		Scan(&raw).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !raw.Valid {
		return decimal.Zero, nil
	}
	return raw.Decimal, nil
}

// CountSuppliers returns the number of registered suppliers.
func (r *Repository) CountSuppliers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Supplier{}).Count(&count).Error
	return count, err
}

// CountCustomers returns the number of registered customers.
func (r *Repository) CountCustomers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Customer{}).Count(&count).Error
	return count, err
}

// CountPendingMaintenance returns how many repair orders are still open.
func (r *Repository) CountPendingMaintenance(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.MaintenanceOrder{}).
		Where("status IN ?", []enums.MaintenanceStatus{
			enums.MaintenanceStatusPending,
			enums.MaintenanceStatusInProgress,
		}).
		Count(&count).Error
	return count, err
}

// TopSold ranks instruments by outbound volume. Ties break on instrument id
// so the ordering is stable.
func (r *Repository) TopSold(ctx context.Context, limit int) ([]TopSoldItem, error) {
	var items []TopSoldItem
	err := r.db.WithContext(ctx).
		Table("stock_movements").
		Select("stock_movements.instrument_id, instruments.name, SUM(stock_movements.quantity) AS total_sold").
		Joins("JOIN instruments ON instruments.id = stock_movements.instrument_id").
		Where("stock_movements.type = ?", enums.MovementTypeOutbound).
		Group("stock_movements.instrument_id, instruments.name").
		Order("total_sold DESC, stock_movements.instrument_id ASC").
		Limit(limit).
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
