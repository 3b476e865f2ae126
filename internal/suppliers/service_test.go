package suppliers

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BielWaki/loja-backend/pkg/db/models"
	pkgerrors "github.com/BielWaki/loja-backend/pkg/errors"
)

type stubSupplierRepo struct {
	supplier *models.Supplier
	list     []models.Supplier
	err      error

	created *models.Supplier
	updated *models.Supplier
	deleted []uuid.UUID
}

func (s *stubSupplierRepo) Create(ctx context.Context, supplier *models.Supplier) error {
	if s.err != nil {
		return s.err
	}
	s.created = supplier
	return nil
}

func (s *stubSupplierRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.supplier, nil
}

func (s *stubSupplierRepo) List(ctx context.Context) ([]models.Supplier, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.list, nil
}

func (s *stubSupplierRepo) Update(ctx context.Context, supplier *models.Supplier) error {
	if s.err != nil {
		return s.err
	}
	s.updated = supplier
	return nil
}

func (s *stubSupplierRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func strPtr(v string) *string { return &v }

func baseSupplier() *models.Supplier {
	return &models.Supplier{
		ID:      uuid.New(),
		Name:    "Luthieria Som Maior",
		Contact: strPtr("contato@sommaior.com.br"),
		Address: strPtr("Rua das Cordas, 123"),
	}
}

func TestNewServiceRequiresRepo(t *testing.T) {
	if _, err := NewService(nil); err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestServiceCreateRejectsBlankName(t *testing.T) {
	svc, err := NewService(&stubSupplierRepo{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.Create(context.Background(), CreateSupplierInput{Name: "   "})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", gotErr)
	}
}

func TestServiceCreateSuccess(t *testing.T) {
	repo := &stubSupplierRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Create(context.Background(), CreateSupplierInput{
		Name:    "Luthieria Som Maior",
		Contact: strPtr("contato@sommaior.com.br"),
	})
	if err != nil {
		t.Fatalf("create supplier: %v", err)
	}
	if repo.created == nil {
		t.Fatal("expected repo create call")
	}
	if dto.ID == uuid.Nil {
		t.Fatal("expected generated id")
	}
	if dto.Name != "Luthieria Som Maior" {
		t.Fatalf("unexpected name %q", dto.Name)
	}
}

func TestServiceGetByIDNotFound(t *testing.T) {
	svc, err := NewService(&stubSupplierRepo{err: gorm.ErrRecordNotFound})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.GetByID(context.Background(), uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", gotErr)
	}
}

func TestServiceUpdateAppliesPartialFields(t *testing.T) {
	supplier := baseSupplier()
	repo := &stubSupplierRepo{supplier: supplier}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Update(context.Background(), supplier.ID, UpdateSupplierInput{
		Contact: strPtr("vendas@sommaior.com.br"),
	})
	if err != nil {
		t.Fatalf("update supplier: %v", err)
	}
	if dto.Name != "Luthieria Som Maior" {
		t.Fatalf("name should be untouched, got %q", dto.Name)
	}
	if dto.Contact == nil || *dto.Contact != "vendas@sommaior.com.br" {
		t.Fatalf("contact not updated: %v", dto.Contact)
	}
	if repo.updated == nil {
		t.Fatal("expected repo update call")
	}
}

func TestServiceUpdateRejectsEmptyName(t *testing.T) {
	supplier := baseSupplier()
	svc, err := NewService(&stubSupplierRepo{supplier: supplier})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.Update(context.Background(), supplier.ID, UpdateSupplierInput{Name: strPtr("")})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", gotErr)
	}
}

func TestServiceDeleteNotFound(t *testing.T) {
	svc, err := NewService(&stubSupplierRepo{err: gorm.ErrRecordNotFound})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	gotErr := svc.Delete(context.Background(), uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", gotErr)
	}
}

func TestServiceDeletePropagatesUnknownErrors(t *testing.T) {
	svc, err := NewService(&stubSupplierRepo{err: errors.New("boom")})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	gotErr := svc.Delete(context.Background(), uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeInternal {
		t.Fatalf("expected internal error, got %v", gotErr)
	}
}
