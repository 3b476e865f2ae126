package models

import (
	"time"

	"github.com/BielWaki/loja-backend/pkg/enums"
	"github.com/google/uuid"
)

// StockMovement records one inbound/outbound/maintenance event against an
// instrument. Its stock effect is applied exactly once at creation; the record
// is immutable afterwards. The instrument reference is protected: an instrument
// cannot be deleted while movements point at it.
type StockMovement struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	Type         enums.MovementType `gorm:"column:type;not null"`
	OccurredAt   time.Time          `gorm:"column:occurred_at;not null"`
	Quantity     int                `gorm:"column:quantity;not null"`
	InstrumentID uuid.UUID          `gorm:"column:instrument_id;type:uuid;not null"`
	Instrument   *Instrument        `gorm:"foreignKey:InstrumentID;constraint:OnDelete:RESTRICT"`
	UserID       *uuid.UUID         `gorm:"column:user_id;type:uuid"`
	CustomerID   *uuid.UUID         `gorm:"column:customer_id;type:uuid"`
	Note         *string            `gorm:"column:note"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
}
