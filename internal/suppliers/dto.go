package suppliers

import (
	"time"

	"github.com/google/uuid"

	"github.com/BielWaki/loja-backend/pkg/db/models"
)

// SupplierDTO exposes supplier data in API responses.
type SupplierDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Contact   *string   `json:"contact,omitempty"`
	Address   *string   `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateSupplierInput holds creation-time supplier data.
type CreateSupplierInput struct {
	Name    string  `json:"name" validate:"required,max=200"`
	Contact *string `json:"contact" validate:"omitempty,max=200"`
	Address *string `json:"address" validate:"omitempty,max=400"`
}

// UpdateSupplierInput captures the allowed supplier fields for mutation.
// Nil fields are left untouched.
type UpdateSupplierInput struct {
	Name    *string `json:"name" validate:"omitempty,max=200"`
	Contact *string `json:"contact" validate:"omitempty,max=200"`
	Address *string `json:"address" validate:"omitempty,max=400"`
}

// ToModel maps the creation payload into a persisted row.
func (in CreateSupplierInput) ToModel() *models.Supplier {
	return &models.Supplier{
		ID:      uuid.New(),
		Name:    in.Name,
		Contact: in.Contact,
		Address: in.Address,
	}
}

// FromModel maps the persisted supplier into a DTO.
func FromModel(m *models.Supplier) *SupplierDTO {
	if m == nil {
		return nil
	}
	return &SupplierDTO{
		ID:        m.ID,
		Name:      m.Name,
		Contact:   m.Contact,
		Address:   m.Address,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
