package movements

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BielWaki/loja-backend/pkg/db/models"
	"github.com/BielWaki/loja-backend/pkg/pagination"
)

// Repository handles movement persistence. Writes run inside the caller's
// transaction so the stock mutation and the ledger entry commit together.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to movement operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetInstrumentForUpdate loads the instrument row under a FOR UPDATE lock so
// concurrent movements serialize on it.
func (r *Repository) GetInstrumentForUpdate(tx *gorm.DB, id uuid.UUID) (*models.Instrument, error) {
	if tx == nil {
		return nil, gorm.ErrInvalidTransaction
	}
	var instrument models.Instrument
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&instrument, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &instrument, nil
}

// SaveInstrumentWithTx persists the mutated stock level inside the transaction.
func (r *Repository) SaveInstrumentWithTx(tx *gorm.DB, instrument *models.Instrument) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if instrument == nil {
		return fmt.Errorf("instrument is required")
	}
	return tx.Save(instrument).Error
}

// CreateWithTx appends the ledger entry inside the transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, movement *models.StockMovement) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if movement == nil {
		return fmt.Errorf("movement is required")
	}
	return tx.Create(movement).Error
}

// FindByID loads a movement by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.StockMovement, error) {
	var movement models.StockMovement
	if err := r.db.WithContext(ctx).First(&movement, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &movement, nil
}

// List returns one page of movements matching the params, newest first. The
// second return value is the cursor for the next page, nil on the last one.
func (r *Repository) List(ctx context.Context, params listParams) ([]models.StockMovement, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.StockMovement{})
	if params.Instrument != nil {
		query = query.Where("instrument_id = ?", *params.Instrument)
	}
	if params.Type != nil {
		query = query.Where("type = ?", *params.Type)
	}
	if params.From != nil {
		query = query.Where("occurred_at >= ?", *params.From)
	}
	if params.To != nil {
		query = query.Where("occurred_at <= ?", *params.To)
	}
	if params.Cursor != nil {
		query = query.Where(
			"occurred_at < ? OR (occurred_at = ? AND id > ?)",
			params.Cursor.Timestamp, params.Cursor.Timestamp, params.Cursor.ID,
		)
	}

	var rows []models.StockMovement
	if err := query.
		Order("occurred_at DESC, id ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, nil, err
	}

	if len(rows) > normalized {
		rows = rows[:normalized]
		last := rows[len(rows)-1]
		return rows, &pagination.Cursor{Timestamp: last.OccurredAt, ID: last.ID}, nil
	}
	return rows, nil, nil
}
