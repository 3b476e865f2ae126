package maintenance

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BielWaki/loja-backend/internal/movements"
	"github.com/BielWaki/loja-backend/pkg/db/models"
	"github.com/BielWaki/loja-backend/pkg/enums"
	pkgerrors "github.com/BielWaki/loja-backend/pkg/errors"
)

type orderRepository interface {
	CreateWithTx(tx *gorm.DB, order *models.MaintenanceOrder) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.MaintenanceOrder, error)
	List(ctx context.Context, filters ListFilters) ([]models.MaintenanceOrder, error)
	Update(ctx context.Context, order *models.MaintenanceOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type movementRecorder interface {
	RecordInTx(tx *gorm.DB, actorID *uuid.UUID, input movements.RecordMovementInput) (*movements.RecordResult, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes repair order operations.
type Service interface {
	Create(ctx context.Context, actorID *uuid.UUID, input CreateOrderInput) (*OrderDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*OrderDTO, error)
	List(ctx context.Context, filters ListFilters) ([]OrderDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateOrderInput) (*OrderDTO, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*OrderDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo   orderRepository
	ledger movementRecorder
	tx     txRunner
}

// NewService builds a maintenance service. The ledger dependency records the
// optional intake movement and may not be nil.
func NewService(repo orderRepository, ledger movementRecorder, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("maintenance repository required")
	}
	if ledger == nil {
		return nil, fmt.Errorf("movement recorder required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, ledger: ledger, tx: tx}, nil
}

func (s *service) Create(ctx context.Context, actorID *uuid.UUID, input CreateOrderInput) (*OrderDTO, error) {
	if input.InstrumentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "instrument_id is required")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "description is required")
	}

	serviceValue := decimal.Zero
	if input.ServiceValue != nil {
		parsed, err := parseServiceValue(*input.ServiceValue)
		if err != nil {
			return nil, err
		}
		serviceValue = parsed
	}

	order := &models.MaintenanceOrder{
		ID:           uuid.New(),
		InstrumentID: input.InstrumentID,
		Description:  input.Description,
		Technician:   input.Technician,
		DueDate:      input.DueDate,
		Status:       enums.MaintenanceStatusPending,
		CustomerID:   input.CustomerID,
		UserID:       actorID,
		ServiceValue: serviceValue,
	}

	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if input.RecordIntake {
			note := "entrada para manutencao"
			result, err := s.ledger.RecordInTx(tx, actorID, movements.RecordMovementInput{
				Type:         enums.MovementTypeMaintenance.String(),
				InstrumentID: input.InstrumentID,
				Quantity:     1,
				CustomerID:   input.CustomerID,
				Note:         &note,
			})
			if err != nil {
				return err
			}
			movementID := result.Movement.ID
			order.MovementID = &movementID
		}
		if err := s.repo.CreateWithTx(tx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create maintenance order")
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return FromModel(order), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*OrderDTO, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "maintenance order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load maintenance order")
	}
	return FromModel(order), nil
}

func (s *service) List(ctx context.Context, filters ListFilters) ([]OrderDTO, error) {
	rows, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list maintenance orders")
	}
	dtos := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateOrderInput) (*OrderDTO, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "maintenance order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load maintenance order")
	}

	if input.Description != nil {
		if strings.TrimSpace(*input.Description) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "description cannot be empty")
		}
		order.Description = *input.Description
	}
	if input.Technician != nil {
		order.Technician = input.Technician
	}
	if input.DueDate != nil {
		order.DueDate = input.DueDate
	}
	if input.CustomerID != nil {
		order.CustomerID = input.CustomerID
	}
	if input.ServiceValue != nil {
		parsed, err := parseServiceValue(*input.ServiceValue)
		if err != nil {
			return nil, err
		}
		order.ServiceValue = parsed
	}

	if err := s.repo.Update(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update maintenance order")
	}
	return FromModel(order), nil
}

// UpdateStatus moves the order to the requested status. Any transition
// between known statuses is allowed.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*OrderDTO, error) {
	parsed, err := enums.ParseMaintenanceStatus(status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status").WithDetails(map[string]any{"status": status})
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "maintenance order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load maintenance order")
	}

	order.Status = parsed
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update maintenance order")
	}
	return FromModel(order), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "maintenance order not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete maintenance order")
	}
	return nil
}

func parseServiceValue(raw string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "invalid service value").WithDetails(map[string]any{"service_value": raw})
	}
	if value.IsNegative() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "service value cannot be negative")
	}
	return value, nil
}
