package movements

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BielWaki/loja-backend/pkg/db/models"
	"github.com/BielWaki/loja-backend/pkg/enums"
	pkgerrors "github.com/BielWaki/loja-backend/pkg/errors"
	"github.com/BielWaki/loja-backend/pkg/pagination"
)

// fakeLedgerStore keeps one instrument in memory and serializes transactions
// the way the row lock does in Postgres.
type fakeLedgerStore struct {
	mu         sync.Mutex
	instrument *models.Instrument
	movements  []models.StockMovement
	missing    bool
}

func (f *fakeLedgerStore) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(nil)
}

func (f *fakeLedgerStore) GetInstrumentForUpdate(tx *gorm.DB, id uuid.UUID) (*models.Instrument, error) {
	if f.missing || f.instrument == nil || f.instrument.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *f.instrument
	return &copied, nil
}

func (f *fakeLedgerStore) SaveInstrumentWithTx(tx *gorm.DB, instrument *models.Instrument) error {
	copied := *instrument
	f.instrument = &copied
	return nil
}

func (f *fakeLedgerStore) CreateWithTx(tx *gorm.DB, movement *models.StockMovement) error {
	f.movements = append(f.movements, *movement)
	return nil
}

func (f *fakeLedgerStore) FindByID(ctx context.Context, id uuid.UUID) (*models.StockMovement, error) {
	for i := range f.movements {
		if f.movements[i].ID == id {
			return &f.movements[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLedgerStore) List(ctx context.Context, params listParams) ([]models.StockMovement, *pagination.Cursor, error) {
	normalized := pagination.NormalizeLimit(params.Limit)
	rows := f.movements
	if params.Cursor != nil {
		for i := range rows {
			if rows[i].ID == params.Cursor.ID {
				rows = rows[i+1:]
				break
			}
		}
	}
	if len(rows) > normalized {
		rows = rows[:normalized]
		last := rows[len(rows)-1]
		return rows, &pagination.Cursor{Timestamp: last.OccurredAt, ID: last.ID}, nil
	}
	return rows, nil, nil
}

func newLedgerService(t *testing.T, store *fakeLedgerStore) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: store, Tx: store})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func storeWithStock(quantity int) (*fakeLedgerStore, uuid.UUID) {
	id := uuid.New()
	return &fakeLedgerStore{
		instrument: &models.Instrument{
			ID:       id,
			Name:     "Violão Clássico",
			Category: enums.InstrumentCategoryStrings,
			Quantity: quantity,
		},
	}, id
}

func TestRecordInboundAddsStock(t *testing.T) {
	store, instrumentID := storeWithStock(10)
	svc := newLedgerService(t, store)

	result, err := svc.Record(context.Background(), nil, RecordMovementInput{
		Type:         "entrada",
		InstrumentID: instrumentID,
		Quantity:     5,
	})
	if err != nil {
		t.Fatalf("record inbound: %v", err)
	}
	if result.Quantity != 15 {
		t.Fatalf("quantity after inbound = %d, want 15", result.Quantity)
	}
	if store.instrument.Quantity != 15 {
		t.Fatalf("persisted quantity = %d, want 15", store.instrument.Quantity)
	}
	if len(store.movements) != 1 {
		t.Fatalf("expected 1 ledger entry, got %d", len(store.movements))
	}
}

func TestRecordOutboundSubtractsStock(t *testing.T) {
	store, instrumentID := storeWithStock(10)
	svc := newLedgerService(t, store)

	result, err := svc.Record(context.Background(), nil, RecordMovementInput{
		Type:         "saida",
		InstrumentID: instrumentID,
		Quantity:     4,
	})
	if err != nil {
		t.Fatalf("record outbound: %v", err)
	}
	if result.Quantity != 6 {
		t.Fatalf("quantity after outbound = %d, want 6", result.Quantity)
	}
}

func TestRecordOutboundInsufficientStock(t *testing.T) {
	store, instrumentID := storeWithStock(10)
	svc := newLedgerService(t, store)

	_, gotErr := svc.Record(context.Background(), nil, RecordMovementInput{
		Type:         "saida",
		InstrumentID: instrumentID,
		Quantity:     20,
	})
	typed := pkgerrors.As(gotErr)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", gotErr)
	}
	if store.instrument.Quantity != 10 {
		t.Fatalf("rejected movement mutated stock to %d", store.instrument.Quantity)
	}
	if len(store.movements) != 0 {
		t.Fatal("rejected movement must not be recorded")
	}
}

func TestRecordMaintenanceLeavesStockUntouched(t *testing.T) {
	store, instrumentID := storeWithStock(7)
	svc := newLedgerService(t, store)

	result, err := svc.Record(context.Background(), nil, RecordMovementInput{
		Type:         "manutencao",
		InstrumentID: instrumentID,
		Quantity:     2,
	})
	if err != nil {
		t.Fatalf("record maintenance: %v", err)
	}
	if result.Quantity != 7 {
		t.Fatalf("quantity after maintenance = %d, want 7", result.Quantity)
	}
	if len(store.movements) != 1 {
		t.Fatalf("maintenance should still append an entry, got %d", len(store.movements))
	}
}

func TestRecordRejectsInvalidType(t *testing.T) {
	store, instrumentID := storeWithStock(10)
	svc := newLedgerService(t, store)

	for _, movementType := range []string{"inbound", "outbound", ""} {
		_, gotErr := svc.Record(context.Background(), nil, RecordMovementInput{
			Type:         movementType,
			InstrumentID: instrumentID,
			Quantity:     1,
		})
		if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("type %q: expected validation error, got %v", movementType, gotErr)
		}
	}
}

func TestRecordRejectsNonPositiveQuantity(t *testing.T) {
	store, instrumentID := storeWithStock(10)
	svc := newLedgerService(t, store)

	for _, quantity := range []int{0, -3} {
		_, gotErr := svc.Record(context.Background(), nil, RecordMovementInput{
			Type:         "entrada",
			InstrumentID: instrumentID,
			Quantity:     quantity,
		})
		if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("quantity %d: expected validation error, got %v", quantity, gotErr)
		}
	}
}

func TestRecordUnknownInstrument(t *testing.T) {
	store, _ := storeWithStock(10)
	svc := newLedgerService(t, store)

	_, gotErr := svc.Record(context.Background(), nil, RecordMovementInput{
		Type:         "entrada",
		InstrumentID: uuid.New(),
		Quantity:     1,
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", gotErr)
	}
}

// Sequence from the shop floor: 10 on hand, receive 5, try to sell 20
// (rejected), sell 15, end at zero.
func TestRecordSequenceEndsAtZero(t *testing.T) {
	store, instrumentID := storeWithStock(10)
	svc := newLedgerService(t, store)
	ctx := context.Background()

	if _, err := svc.Record(ctx, nil, RecordMovementInput{Type: "entrada", InstrumentID: instrumentID, Quantity: 5}); err != nil {
		t.Fatalf("inbound 5: %v", err)
	}
	if _, err := svc.Record(ctx, nil, RecordMovementInput{Type: "saida", InstrumentID: instrumentID, Quantity: 20}); err == nil {
		t.Fatal("outbound 20 should be rejected at level 15")
	}
	result, err := svc.Record(ctx, nil, RecordMovementInput{Type: "saida", InstrumentID: instrumentID, Quantity: 15})
	if err != nil {
		t.Fatalf("outbound 15: %v", err)
	}
	if result.Quantity != 0 {
		t.Fatalf("final quantity = %d, want 0", result.Quantity)
	}
	if len(store.movements) != 2 {
		t.Fatalf("ledger entries = %d, want 2", len(store.movements))
	}
}

func TestRecordConcurrentOutboundNeverOversells(t *testing.T) {
	store, instrumentID := storeWithStock(5)
	svc := newLedgerService(t, store)

	const attempts = 10
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, errs[idx] = svc.Record(context.Background(), nil, RecordMovementInput{
				Type:         "saida",
				InstrumentID: instrumentID,
				Quantity:     1,
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	if succeeded != 5 {
		t.Fatalf("successful outbounds = %d, want 5", succeeded)
	}
	if store.instrument.Quantity != 0 {
		t.Fatalf("final quantity = %d, want 0", store.instrument.Quantity)
	}
	if len(store.movements) != 5 {
		t.Fatalf("ledger entries = %d, want 5", len(store.movements))
	}
}

func TestListPagesThroughTheLedger(t *testing.T) {
	store, instrumentID := storeWithStock(100)
	svc := newLedgerService(t, store)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Record(ctx, nil, RecordMovementInput{Type: "saida", InstrumentID: instrumentID, Quantity: 1}); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	first, err := svc.List(ctx, ListFilters{Pagination: pagination.Params{Limit: 2}})
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if len(first.Items) != 2 {
		t.Fatalf("first page size = %d, want 2", len(first.Items))
	}
	if first.NextCursor == "" {
		t.Fatal("expected a next cursor on the first page")
	}

	second, err := svc.List(ctx, ListFilters{Pagination: pagination.Params{Limit: 2, Cursor: first.NextCursor}})
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if len(second.Items) != 1 {
		t.Fatalf("second page size = %d, want 1", len(second.Items))
	}
	if second.NextCursor != "" {
		t.Fatalf("unexpected next cursor %q on the last page", second.NextCursor)
	}
}

func TestListRejectsMalformedCursor(t *testing.T) {
	store, _ := storeWithStock(10)
	svc := newLedgerService(t, store)

	_, gotErr := svc.List(context.Background(), ListFilters{Pagination: pagination.Params{Cursor: "???"}})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", gotErr)
	}
}
