package models

import (
	"time"

	"github.com/BielWaki/loja-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Instrument is the canonical inventory item. Quantity is mutated exclusively
// by the movement ledger and must never go negative.
type Instrument struct {
	ID         uuid.UUID                `gorm:"column:id;type:uuid;primaryKey"`
	Name       string                   `gorm:"column:name;not null"`
	Category   enums.InstrumentCategory `gorm:"column:category;not null"`
	Price      decimal.Decimal          `gorm:"column:price;type:numeric(10,2);not null"`
	Quantity   int                      `gorm:"column:quantity;not null;default:0"`
	SupplierID *uuid.UUID               `gorm:"column:supplier_id;type:uuid"`
	Supplier   *Supplier                `gorm:"foreignKey:SupplierID;constraint:OnDelete:SET NULL"`
	CreatedAt  time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}

// StockValue returns quantity * price for dashboard aggregation.
func (i Instrument) StockValue() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
