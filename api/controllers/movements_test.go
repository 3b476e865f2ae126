package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BielWaki/loja-backend/api/middleware"
	"github.com/BielWaki/loja-backend/internal/movements"
	"github.com/BielWaki/loja-backend/pkg/enums"
	pkgerrors "github.com/BielWaki/loja-backend/pkg/errors"
)

type stubMovementService struct {
	result *movements.RecordResult
	err    error

	lastActor   *uuid.UUID
	lastInput   movements.RecordMovementInput
	lastFilters movements.ListFilters
}

func (s *stubMovementService) Record(ctx context.Context, actorID *uuid.UUID, input movements.RecordMovementInput) (*movements.RecordResult, error) {
	s.lastActor = actorID
	s.lastInput = input
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubMovementService) RecordInTx(tx *gorm.DB, actorID *uuid.UUID, input movements.RecordMovementInput) (*movements.RecordResult, error) {
	return s.Record(context.Background(), actorID, input)
}

func (s *stubMovementService) GetByID(ctx context.Context, id uuid.UUID) (*movements.MovementDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result.Movement, nil
}

func (s *stubMovementService) List(ctx context.Context, filters movements.ListFilters) (*movements.MovementPage, error) {
	s.lastFilters = filters
	if s.err != nil {
		return nil, s.err
	}
	if s.result == nil {
		return &movements.MovementPage{}, nil
	}
	return &movements.MovementPage{Items: []movements.MovementDTO{*s.result.Movement}}, nil
}

func TestMovementRecordSuccess(t *testing.T) {
	userID := uuid.New()
	instrumentID := uuid.New()
	svc := &stubMovementService{
		result: &movements.RecordResult{
			Movement: &movements.MovementDTO{
				ID:           uuid.New(),
				Type:         enums.MovementTypeOutbound,
				Quantity:     3,
				InstrumentID: instrumentID,
			},
			Quantity: 7,
		},
	}
	handler := MovementRecord(svc, nil)

	payload := []byte(`{"type":"saida","instrument_id":"` + instrumentID.String() + `","quantity":3}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/movements", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastActor == nil || *svc.lastActor != userID {
		t.Fatalf("actor not forwarded: %v", svc.lastActor)
	}
	if svc.lastInput.Type != "saida" || svc.lastInput.Quantity != 3 {
		t.Fatalf("unexpected input %+v", svc.lastInput)
	}

	var envelope struct {
		Data movements.RecordResult `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Quantity != 7 {
		t.Fatalf("stock level = %d, want 7", envelope.Data.Quantity)
	}
}

func TestMovementRecordMissingUserContext(t *testing.T) {
	handler := MovementRecord(&stubMovementService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/movements", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestMovementRecordInsufficientStock(t *testing.T) {
	userID := uuid.New()
	instrumentID := uuid.New()
	svc := &stubMovementService{
		err: pkgerrors.New(pkgerrors.CodeValidation, "insufficient stock").WithDetails(map[string]any{"available": 2, "requested": 5}),
	}
	handler := MovementRecord(svc, nil)

	payload := []byte(`{"type":"saida","instrument_id":"` + instrumentID.String() + `","quantity":5}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/movements", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	var envelope struct {
		Error struct {
			Message string         `json:"message"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Message != "insufficient stock" {
		t.Fatalf("message = %q", envelope.Error.Message)
	}
	if envelope.Error.Details["available"] != float64(2) {
		t.Fatalf("details = %v", envelope.Error.Details)
	}
}

func TestMovementListRejectsBadType(t *testing.T) {
	handler := MovementList(&stubMovementService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/movements?type=inbound", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestMovementListForwardsPagination(t *testing.T) {
	svc := &stubMovementService{}
	handler := MovementList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/movements?limit=10&cursor=abc", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastFilters.Pagination.Limit != 10 {
		t.Fatalf("limit = %d, want 10", svc.lastFilters.Pagination.Limit)
	}
	if svc.lastFilters.Pagination.Cursor != "abc" {
		t.Fatalf("cursor = %q, want abc", svc.lastFilters.Pagination.Cursor)
	}
}

func TestMovementListRejectsBadTimestamp(t *testing.T) {
	handler := MovementList(&stubMovementService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/movements?from=ontem", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}
