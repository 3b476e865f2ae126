package models

import (
	"time"

	"github.com/BielWaki/loja-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaintenanceOrder tracks a repair job, optionally linked one-to-one to the
// stock movement that logged the intake.
type MaintenanceOrder struct {
	ID           uuid.UUID               `gorm:"column:id;type:uuid;primaryKey"`
	MovementID   *uuid.UUID              `gorm:"column:movement_id;type:uuid;uniqueIndex"`
	InstrumentID uuid.UUID               `gorm:"column:instrument_id;type:uuid;not null"`
	Instrument   *Instrument             `gorm:"foreignKey:InstrumentID;constraint:OnDelete:CASCADE"`
	Description  string                  `gorm:"column:description;not null"`
	Technician   *string                 `gorm:"column:technician"`
	DueDate      *time.Time              `gorm:"column:due_date"`
	Status       enums.MaintenanceStatus `gorm:"column:status;not null;default:pendente"`
	CustomerID   *uuid.UUID              `gorm:"column:customer_id;type:uuid"`
	UserID       *uuid.UUID              `gorm:"column:user_id;type:uuid"`
	ServiceValue decimal.Decimal         `gorm:"column:service_value;type:numeric(9,2);not null;default:0"`
	CreatedAt    time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
