package movements

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/BielWaki/loja-backend/pkg/db/models"
	"github.com/BielWaki/loja-backend/pkg/enums"
)

func setupMovementsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	instruments := `
CREATE TABLE IF NOT EXISTS instruments (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  category TEXT NOT NULL,
  price NUMERIC NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 0,
  supplier_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	stockMovements := `
CREATE TABLE IF NOT EXISTS stock_movements (
  id TEXT PRIMARY KEY,
  type TEXT NOT NULL,
  occurred_at DATETIME NOT NULL,
  quantity INTEGER NOT NULL,
  instrument_id TEXT NOT NULL,
  user_id TEXT,
  customer_id TEXT,
  note TEXT,
  created_at DATETIME
);`

	require.NoError(t, db.Exec(instruments).Error)
	require.NoError(t, db.Exec(stockMovements).Error)
	return db
}

func seedInstrument(t *testing.T, db *gorm.DB, quantity int) *models.Instrument {
	t.Helper()
	instrument := &models.Instrument{
		ID:       uuid.New(),
		Name:     "Violão Clássico",
		Category: enums.InstrumentCategoryStrings,
		Price:    decimal.RequireFromString("1200.50"),
		Quantity: quantity,
	}
	require.NoError(t, db.Create(instrument).Error)
	return instrument
}

func TestRepositoryCreateAndFind(t *testing.T) {
	db := setupMovementsTestDB(t)
	repo := NewRepository(db)
	instrument := seedInstrument(t, db, 10)

	movement := &models.StockMovement{
		ID:           uuid.New(),
		Type:         enums.MovementTypeInbound,
		OccurredAt:   time.Now().UTC(),
		Quantity:     5,
		InstrumentID: instrument.ID,
	}
	require.NoError(t, repo.CreateWithTx(db, movement))

	found, err := repo.FindByID(context.Background(), movement.ID)
	require.NoError(t, err)
	assert.Equal(t, movement.ID, found.ID)
	assert.Equal(t, enums.MovementTypeInbound, found.Type)
	assert.Equal(t, 5, found.Quantity)
}

func TestRepositoryListFilters(t *testing.T) {
	db := setupMovementsTestDB(t)
	repo := NewRepository(db)
	guitar := seedInstrument(t, db, 10)
	flute := seedInstrument(t, db, 3)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	rows := []*models.StockMovement{
		{ID: uuid.New(), Type: enums.MovementTypeInbound, OccurredAt: base, Quantity: 5, InstrumentID: guitar.ID},
		{ID: uuid.New(), Type: enums.MovementTypeOutbound, OccurredAt: base.Add(24 * time.Hour), Quantity: 2, InstrumentID: guitar.ID},
		{ID: uuid.New(), Type: enums.MovementTypeOutbound, OccurredAt: base.Add(48 * time.Hour), Quantity: 1, InstrumentID: flute.ID},
	}
	for _, row := range rows {
		require.NoError(t, repo.CreateWithTx(db, row))
	}

	byInstrument, _, err := repo.List(context.Background(), listParams{Instrument: &guitar.ID})
	require.NoError(t, err)
	require.Len(t, byInstrument, 2)
	assert.True(t, byInstrument[0].OccurredAt.After(byInstrument[1].OccurredAt), "newest first")

	outbound := enums.MovementTypeOutbound
	byType, _, err := repo.List(context.Background(), listParams{Type: &outbound})
	require.NoError(t, err)
	assert.Len(t, byType, 2)

	from := base.Add(36 * time.Hour)
	byPeriod, _, err := repo.List(context.Background(), listParams{From: &from})
	require.NoError(t, err)
	require.Len(t, byPeriod, 1)
	assert.Equal(t, flute.ID, byPeriod[0].InstrumentID)
}

func TestRepositoryListPaginates(t *testing.T) {
	db := setupMovementsTestDB(t)
	repo := NewRepository(db)
	instrument := seedInstrument(t, db, 10)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		movement := &models.StockMovement{
			ID:           uuid.New(),
			Type:         enums.MovementTypeInbound,
			OccurredAt:   base.Add(time.Duration(i) * time.Hour),
			Quantity:     1,
			InstrumentID: instrument.ID,
		}
		require.NoError(t, repo.CreateWithTx(db, movement))
	}

	first, next, err := repo.List(context.Background(), listParams{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first, 2)
	require.NotNil(t, next)
	assert.Equal(t, first[1].ID, next.ID)

	second, last, err := repo.List(context.Background(), listParams{Limit: 2, Cursor: next})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Nil(t, last)
	assert.True(t, first[1].OccurredAt.After(second[0].OccurredAt), "pages stay in order")
}

func TestRepositorySaveInstrumentPersistsQuantity(t *testing.T) {
	db := setupMovementsTestDB(t)
	repo := NewRepository(db)
	instrument := seedInstrument(t, db, 10)

	instrument.Quantity = 4
	require.NoError(t, repo.SaveInstrumentWithTx(db, instrument))

	var reloaded models.Instrument
	require.NoError(t, db.First(&reloaded, "id = ?", instrument.ID).Error)
	assert.Equal(t, 4, reloaded.Quantity)
}

func TestRepositoryRejectsNilTransaction(t *testing.T) {
	repo := NewRepository(nil)

	_, err := repo.GetInstrumentForUpdate(nil, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrInvalidTransaction)

	assert.ErrorIs(t, repo.CreateWithTx(nil, &models.StockMovement{}), gorm.ErrInvalidTransaction)
	assert.ErrorIs(t, repo.SaveInstrumentWithTx(nil, &models.Instrument{}), gorm.ErrInvalidTransaction)
}
