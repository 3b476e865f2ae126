package movements

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BielWaki/loja-backend/pkg/db/models"
	"github.com/BielWaki/loja-backend/pkg/enums"
	pkgerrors "github.com/BielWaki/loja-backend/pkg/errors"
	"github.com/BielWaki/loja-backend/pkg/metrics"
	"github.com/BielWaki/loja-backend/pkg/pagination"
)

type movementRepository interface {
	GetInstrumentForUpdate(tx *gorm.DB, id uuid.UUID) (*models.Instrument, error)
	SaveInstrumentWithTx(tx *gorm.DB, instrument *models.Instrument) error
	CreateWithTx(tx *gorm.DB, movement *models.StockMovement) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.StockMovement, error)
	List(ctx context.Context, params listParams) ([]models.StockMovement, *pagination.Cursor, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service appends ledger entries and applies their stock effect. RecordInTx
// lets callers commit an entry together with their own writes.
type Service interface {
	Record(ctx context.Context, actorID *uuid.UUID, input RecordMovementInput) (*RecordResult, error)
	RecordInTx(tx *gorm.DB, actorID *uuid.UUID, input RecordMovementInput) (*RecordResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (*MovementDTO, error)
	List(ctx context.Context, filters ListFilters) (*MovementPage, error)
}

type service struct {
	repo    movementRepository
	tx      txRunner
	metrics *metrics.StockMetrics
}

// ServiceParams bundles the dependencies required to build a movement service.
type ServiceParams struct {
	Repo    movementRepository
	Tx      txRunner
	Metrics *metrics.StockMetrics
}

// NewService constructs a movement service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("movement repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:    params.Repo,
		tx:      params.Tx,
		metrics: params.Metrics,
	}, nil
}

// Record appends one ledger entry. Entrada adds the quantity to the
// instrument, saida subtracts it and fails on insufficient stock, manutencao
// leaves the level untouched. The stock mutation and the entry commit in one
// transaction so the effect applies exactly once.
func (s *service) Record(ctx context.Context, actorID *uuid.UUID, input RecordMovementInput) (*RecordResult, error) {
	var result *RecordResult
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		result, err = s.RecordInTx(tx, actorID, input)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}
	return result, nil
}

// RecordInTx appends one ledger entry inside an externally managed
// transaction, so callers can commit the entry together with their own rows.
func (s *service) RecordInTx(tx *gorm.DB, actorID *uuid.UUID, input RecordMovementInput) (*RecordResult, error) {
	movementType, err := enums.ParseMovementType(input.Type)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid movement type").WithDetails(map[string]any{"type": input.Type})
	}
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if input.InstrumentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "instrument_id is required")
	}

	occurredAt := time.Now().UTC()
	if input.OccurredAt != nil {
		occurredAt = input.OccurredAt.UTC()
	}

	movement := &models.StockMovement{
		ID:           uuid.New(),
		Type:         movementType,
		OccurredAt:   occurredAt,
		Quantity:     input.Quantity,
		InstrumentID: input.InstrumentID,
		UserID:       actorID,
		CustomerID:   input.CustomerID,
		Note:         input.Note,
	}

	instrument, err := s.repo.GetInstrumentForUpdate(tx, input.InstrumentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "instrument not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lock instrument")
	}

	switch movementType {
	case enums.MovementTypeInbound:
		instrument.Quantity += input.Quantity
	case enums.MovementTypeOutbound:
		if input.Quantity > instrument.Quantity {
			s.metrics.IncRejection()
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "insufficient stock").WithDetails(map[string]any{
				"available": instrument.Quantity,
				"requested": input.Quantity,
			})
		}
		instrument.Quantity -= input.Quantity
	case enums.MovementTypeMaintenance:
		// no stock effect
	}

	if movementType != enums.MovementTypeMaintenance {
		if err := s.repo.SaveInstrumentWithTx(tx, instrument); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save instrument")
		}
	}
	if err := s.repo.CreateWithTx(tx, movement); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create movement")
	}

	s.metrics.IncMovement(movementType.String())

	return &RecordResult{
		Movement: FromModel(movement),
		Quantity: instrument.Quantity,
	}, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*MovementDTO, error) {
	movement, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "movement not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load movement")
	}
	return FromModel(movement), nil
}

func (s *service) List(ctx context.Context, filters ListFilters) (*MovementPage, error) {
	params := listParams{
		Instrument: filters.Instrument,
		Type:       filters.Type,
		From:       filters.From,
		To:         filters.To,
		Limit:      filters.Pagination.Limit,
	}
	if filters.Pagination.Cursor != "" {
		cursor, err := pagination.ParseCursor(filters.Pagination.Cursor)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
		}
		params.Cursor = cursor
	}

	rows, next, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list movements")
	}

	page := &MovementPage{Items: make([]MovementDTO, 0, len(rows))}
	for i := range rows {
		page.Items = append(page.Items, *FromModel(&rows[i]))
	}
	if next != nil {
		page.NextCursor = pagination.EncodeCursor(*next)
	}
	return page, nil
}
