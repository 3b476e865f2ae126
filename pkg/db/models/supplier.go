package models

import (
	"time"

	"github.com/google/uuid"
)

// Supplier is a vendor instruments can be sourced from. Deleting a supplier
// nulls the references on its instruments, never cascades.
type Supplier struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Contact   *string   `gorm:"column:contact"`
	Address   *string   `gorm:"column:address"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
