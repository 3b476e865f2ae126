package movements

import (
	"time"

	"github.com/google/uuid"

	"github.com/BielWaki/loja-backend/pkg/db/models"
	"github.com/BielWaki/loja-backend/pkg/enums"
	"github.com/BielWaki/loja-backend/pkg/pagination"
)

// MovementDTO exposes one ledger entry in API responses.
type MovementDTO struct {
	ID           uuid.UUID          `json:"id"`
	Type         enums.MovementType `json:"type"`
	OccurredAt   time.Time          `json:"occurred_at"`
	Quantity     int                `json:"quantity"`
	InstrumentID uuid.UUID          `json:"instrument_id"`
	UserID       *uuid.UUID         `json:"user_id,omitempty"`
	CustomerID   *uuid.UUID         `json:"customer_id,omitempty"`
	Note         *string            `json:"note,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

// RecordMovementInput holds the data needed to append one ledger entry.
type RecordMovementInput struct {
	Type         string     `json:"type" validate:"required"`
	InstrumentID uuid.UUID  `json:"instrument_id" validate:"required"`
	Quantity     int        `json:"quantity" validate:"required,gt=0"`
	OccurredAt   *time.Time `json:"occurred_at"`
	CustomerID   *uuid.UUID `json:"customer_id"`
	Note         *string    `json:"note" validate:"omitempty,max=1000"`
}

// RecordResult pairs the appended entry with the stock level it produced.
type RecordResult struct {
	Movement *MovementDTO `json:"movement"`
	Quantity int          `json:"quantity"`
}

// ListFilters narrows movement listings.
type ListFilters struct {
	Instrument *uuid.UUID
	Type       *enums.MovementType
	From       *time.Time
	To         *time.Time
	Pagination pagination.Params
}

// listParams is the repository-side query after the cursor has been decoded.
type listParams struct {
	Instrument *uuid.UUID
	Type       *enums.MovementType
	From       *time.Time
	To         *time.Time
	Cursor     *pagination.Cursor
	Limit      int
}

// MovementPage is one page of ledger entries, newest first, with the cursor
// for the next page when more rows remain.
type MovementPage struct {
	Items      []MovementDTO `json:"items"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// FromModel maps the persisted movement into a DTO.
func FromModel(m *models.StockMovement) *MovementDTO {
	if m == nil {
		return nil
	}
	return &MovementDTO{
		ID:           m.ID,
		Type:         m.Type,
		OccurredAt:   m.OccurredAt,
		Quantity:     m.Quantity,
		InstrumentID: m.InstrumentID,
		UserID:       m.UserID,
		CustomerID:   m.CustomerID,
		Note:         m.Note,
		CreatedAt:    m.CreatedAt,
	}
}
