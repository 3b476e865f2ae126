package customers

import (
	"time"

	"github.com/google/uuid"

	"github.com/BielWaki/loja-backend/pkg/db/models"
)

// CustomerDTO exposes customer data in API responses.
type CustomerDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Contact   *string   `json:"contact,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCustomerInput holds creation-time customer data.
type CreateCustomerInput struct {
	Name    string  `json:"name" validate:"required,max=200"`
	Contact *string `json:"contact" validate:"omitempty,max=200"`
	Notes   *string `json:"notes" validate:"omitempty,max=1000"`
}

// UpdateCustomerInput captures the allowed customer fields for mutation.
// Nil fields are left untouched.
type UpdateCustomerInput struct {
	Name    *string `json:"name" validate:"omitempty,max=200"`
	Contact *string `json:"contact" validate:"omitempty,max=200"`
	Notes   *string `json:"notes" validate:"omitempty,max=1000"`
}

// ToModel maps the creation payload into a persisted row.
func (in CreateCustomerInput) ToModel() *models.Customer {
	return &models.Customer{
		ID:      uuid.New(),
		Name:    in.Name,
		Contact: in.Contact,
		Notes:   in.Notes,
	}
}

// FromModel maps the persisted customer into a DTO.
func FromModel(m *models.Customer) *CustomerDTO {
	if m == nil {
		return nil
	}
	return &CustomerDTO{
		ID:        m.ID,
		Name:      m.Name,
		Contact:   m.Contact,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
