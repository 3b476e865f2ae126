package instruments

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BielWaki/loja-backend/pkg/db/models"
	"github.com/BielWaki/loja-backend/pkg/enums"
)

// InstrumentDTO exposes inventory data in API responses. Price and stock
// value are serialized as fixed-point strings.
type InstrumentDTO struct {
	ID         uuid.UUID                `json:"id"`
	Name       string                   `json:"name"`
	Category   enums.InstrumentCategory `json:"category"`
	Price      decimal.Decimal          `json:"price"`
	Quantity   int                      `json:"quantity"`
	StockValue decimal.Decimal          `json:"stock_value"`
	SupplierID *uuid.UUID               `json:"supplier_id,omitempty"`
	CreatedAt  time.Time                `json:"created_at"`
	UpdatedAt  time.Time                `json:"updated_at"`
}

// CreateInstrumentInput holds creation-time inventory data. Quantity is the
// opening stock level; later changes go through stock movements.
type CreateInstrumentInput struct {
	Name       string     `json:"name" validate:"required,max=200"`
	Category   string     `json:"category" validate:"required"`
	Price      string     `json:"price" validate:"required"`
	Quantity   int        `json:"quantity" validate:"gte=0"`
	SupplierID *uuid.UUID `json:"supplier_id"`
}

// UpdateInstrumentInput captures the mutable instrument fields. Quantity is
// deliberately absent: stock levels change only via movements.
type UpdateInstrumentInput struct {
	Name       *string    `json:"name" validate:"omitempty,max=200"`
	Category   *string    `json:"category"`
	Price      *string    `json:"price"`
	SupplierID *uuid.UUID `json:"supplier_id"`
}

// ListFilters narrows instrument listings.
type ListFilters struct {
	Category *enums.InstrumentCategory
	Supplier *uuid.UUID
	Search   string
}

// FromModel maps the persisted instrument into a DTO.
func FromModel(m *models.Instrument) *InstrumentDTO {
	if m == nil {
		return nil
	}
	return &InstrumentDTO{
		ID:         m.ID,
		Name:       m.Name,
		Category:   m.Category,
		Price:      m.Price,
		Quantity:   m.Quantity,
		StockValue: m.StockValue(),
		SupplierID: m.SupplierID,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
