package maintenance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BielWaki/loja-backend/pkg/db/models"
	"github.com/BielWaki/loja-backend/pkg/enums"
)

// OrderDTO exposes a repair job in API responses.
type OrderDTO struct {
	ID           uuid.UUID               `json:"id"`
	MovementID   *uuid.UUID              `json:"movement_id,omitempty"`
	InstrumentID uuid.UUID               `json:"instrument_id"`
	Description  string                  `json:"description"`
	Technician   *string                 `json:"technician,omitempty"`
	DueDate      *time.Time              `json:"due_date,omitempty"`
	Status       enums.MaintenanceStatus `json:"status"`
	CustomerID   *uuid.UUID              `json:"customer_id,omitempty"`
	UserID       *uuid.UUID              `json:"user_id,omitempty"`
	ServiceValue decimal.Decimal         `json:"service_value"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

// CreateOrderInput holds creation-time repair data. RecordIntake appends a
// manutencao ledger entry linked one-to-one to the new order.
type CreateOrderInput struct {
	InstrumentID uuid.UUID  `json:"instrument_id" validate:"required"`
	Description  string     `json:"description" validate:"required,max=1000"`
	Technician   *string    `json:"technician" validate:"omitempty,max=200"`
	DueDate      *time.Time `json:"due_date"`
	CustomerID   *uuid.UUID `json:"customer_id"`
	ServiceValue *string    `json:"service_value"`
	RecordIntake bool       `json:"record_intake"`
}

// UpdateOrderInput captures the mutable repair fields. Status changes go
// through UpdateStatus.
type UpdateOrderInput struct {
	Description  *string    `json:"description" validate:"omitempty,max=1000"`
	Technician   *string    `json:"technician" validate:"omitempty,max=200"`
	DueDate      *time.Time `json:"due_date"`
	CustomerID   *uuid.UUID `json:"customer_id"`
	ServiceValue *string    `json:"service_value"`
}

// ListFilters narrows maintenance listings.
type ListFilters struct {
	Status     *enums.MaintenanceStatus
	Instrument *uuid.UUID
}

// FromModel maps the persisted order into a DTO.
func FromModel(m *models.MaintenanceOrder) *OrderDTO {
	if m == nil {
		return nil
	}
	return &OrderDTO{
		ID:           m.ID,
		MovementID:   m.MovementID,
		InstrumentID: m.InstrumentID,
		Description:  m.Description,
		Technician:   m.Technician,
		DueDate:      m.DueDate,
		Status:       m.Status,
		CustomerID:   m.CustomerID,
		UserID:       m.UserID,
		ServiceValue: m.ServiceValue,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
