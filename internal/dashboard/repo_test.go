package dashboard

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

func setupDashboardTestDB(t *testing.T) *gorm.DB {
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

func seedRankedInstrument(t *testing.T, db *gorm.DB, id uuid.UUID, name string) {
	t.Helper()
	require.NoError(t, db.Create(&models.Instrument{
		ID:       id,
		Name:     name,
		Category: enums.InstrumentCategoryStrings,
		Price:    decimal.RequireFromString("900.00"),
		Quantity: 20,
	}).Error)
}

func seedMovement(t *testing.T, db *gorm.DB, instrumentID uuid.UUID, movementType enums.MovementType, quantity int) {
	t.Helper()
	require.NoError(t, db.Create(&models.StockMovement{
		ID:           uuid.New(),
		Type:         movementType,
		OccurredAt:   time.Now().UTC(),
		Quantity:     quantity,
		InstrumentID: instrumentID,
	}).Error)
}

func TestRepositoryTopSoldBreaksTiesByInstrumentID(t *testing.T) {
	db := setupDashboardTestDB(t)
	repo := NewRepository(db)

	lower, higher := uuid.New(), uuid.New()
	if higher.String() < lower.String() {
		lower, higher = higher, lower
	}
	leader := uuid.New()

	seedRankedInstrument(t, db, lower, "Violão Clássico")
	seedRankedInstrument(t, db, higher, "Cavaquinho")
	seedRankedInstrument(t, db, leader, "Flauta Transversal")

	seedMovement(t, db, lower, enums.MovementTypeOutbound, 3)
	seedMovement(t, db, lower, enums.MovementTypeOutbound, 2)
	seedMovement(t, db, higher, enums.MovementTypeOutbound, 5)
	seedMovement(t, db, leader, enums.MovementTypeOutbound, 7)
	seedMovement(t, db, lower, enums.MovementTypeInbound, 10)

	items, err := repo.TopSold(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, leader, items[0].InstrumentID, "highest volume first")
	assert.Equal(t, 7, items[0].TotalSold)

	assert.Equal(t, lower, items[1].InstrumentID, "equal totals order by id ascending")
	assert.Equal(t, higher, items[2].InstrumentID)
	assert.Equal(t, 5, items[1].TotalSold, "entrada rows must not count")
	assert.Equal(t, 5, items[2].TotalSold)
}

func TestRepositoryTopSoldHonorsLimit(t *testing.T) {
	db := setupDashboardTestDB(t)
	repo := NewRepository(db)

	for i := 1; i <= 3; i++ {
		id := uuid.New()
		seedRankedInstrument(t, db, id, "Instrumento")
		seedMovement(t, db, id, enums.MovementTypeOutbound, i)
	}

	items, err := repo.TopSold(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 3, items[0].TotalSold)
	assert.Equal(t, 2, items[1].TotalSold)
}
