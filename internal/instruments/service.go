package instruments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BielWaki/loja-backend/pkg/db/models"
	"github.com/BielWaki/loja-backend/pkg/enums"
	pkgerrors "github.com/BielWaki/loja-backend/pkg/errors"
)

type instrumentRepository interface {
	Create(ctx context.Context, instrument *models.Instrument) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Instrument, error)
	List(ctx context.Context, filters ListFilters) ([]models.Instrument, error)
	Update(ctx context.Context, instrument *models.Instrument) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountMovements(ctx context.Context, id uuid.UUID) (int64, error)
}

// Service exposes inventory operations.
type Service interface {
	Create(ctx context.Context, input CreateInstrumentInput) (*InstrumentDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*InstrumentDTO, error)
	List(ctx context.Context, filters ListFilters) ([]InstrumentDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInstrumentInput) (*InstrumentDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo instrumentRepository
}

// NewService builds an instrument service with the provided repository.
func NewService(repo instrumentRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("instrument repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInstrumentInput) (*InstrumentDTO, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "instrument name is required")
	}
	category, err := enums.ParseInstrumentCategory(input.Category)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category").WithDetails(map[string]any{"category": input.Category})
	}
	price, err := parsePrice(input.Price)
	if err != nil {
		return nil, err
	}
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}

	instrument := &models.Instrument{
		ID:         uuid.New(),
		Name:       input.Name,
		Category:   category,
		Price:      price,
		Quantity:   input.Quantity,
		SupplierID: input.SupplierID,
	}
	if err := s.repo.Create(ctx, instrument); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create instrument")
	}
	return FromModel(instrument), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*InstrumentDTO, error) {
	instrument, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "instrument not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load instrument")
	}
	return FromModel(instrument), nil
}

func (s *service) List(ctx context.Context, filters ListFilters) ([]InstrumentDTO, error) {
	rows, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list instruments")
	}
	dtos := make([]InstrumentDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos, nil
}

// Update mutates descriptive fields only. Quantity never changes here; the
// stock ledger owns it.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInstrumentInput) (*InstrumentDTO, error) {
	instrument, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "instrument not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load instrument")
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "instrument name cannot be empty")
		}
		instrument.Name = *input.Name
	}
	if input.Category != nil {
		category, err := enums.ParseInstrumentCategory(*input.Category)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category").WithDetails(map[string]any{"category": *input.Category})
		}
		instrument.Category = category
	}
	if input.Price != nil {
		price, err := parsePrice(*input.Price)
		if err != nil {
			return nil, err
		}
		instrument.Price = price
	}
	if input.SupplierID != nil {
		instrument.SupplierID = input.SupplierID
	}

	if err := s.repo.Update(ctx, instrument); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update instrument")
	}
	return FromModel(instrument), nil
}

// Delete removes an instrument only when no movements reference it, keeping
// the ledger history intact.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	count, err := s.repo.CountMovements(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count movements")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "instrument has recorded movements")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "instrument not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete instrument")
	}
	return nil
}

func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "invalid price").WithDetails(map[string]any{"price": raw})
	}
	if price.IsNegative() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	return price, nil
}
