package customers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BielWaki/loja-backend/pkg/db/models"
	pkgerrors "github.com/BielWaki/loja-backend/pkg/errors"
)

type stubCustomerRepo struct {
	customer *models.Customer
	list     []models.Customer
	err      error

	created *models.Customer
	updated *models.Customer
	deleted []uuid.UUID
}

func (s *stubCustomerRepo) Create(ctx context.Context, customer *models.Customer) error {
	if s.err != nil {
		return s.err
	}
	s.created = customer
	return nil
}

func (s *stubCustomerRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.customer, nil
}

func (s *stubCustomerRepo) List(ctx context.Context) ([]models.Customer, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.list, nil
}

func (s *stubCustomerRepo) Update(ctx context.Context, customer *models.Customer) error {
	if s.err != nil {
		return s.err
	}
	s.updated = customer
	return nil
}

func (s *stubCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func strPtr(v string) *string { return &v }

func TestServiceCreateRejectsBlankName(t *testing.T) {
	svc, err := NewService(&stubCustomerRepo{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.Create(context.Background(), CreateCustomerInput{Name: " "})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", gotErr)
	}
}

func TestServiceCreateSuccess(t *testing.T) {
	repo := &stubCustomerRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Create(context.Background(), CreateCustomerInput{
		Name:    "Ana Paula Ribeiro",
		Contact: strPtr("+55 11 98888-1234"),
	})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	if repo.created == nil {
		t.Fatal("expected repo create call")
	}
	if dto.Name != "Ana Paula Ribeiro" {
		t.Fatalf("unexpected name %q", dto.Name)
	}
}

func TestServiceUpdatePartial(t *testing.T) {
	customer := &models.Customer{
		ID:      uuid.New(),
		Name:    "Carlos Mendes",
		Contact: strPtr("carlos@example.com"),
	}
	repo := &stubCustomerRepo{customer: customer}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Update(context.Background(), customer.ID, UpdateCustomerInput{
		Notes: strPtr("prefere contato por email"),
	})
	if err != nil {
		t.Fatalf("update customer: %v", err)
	}
	if dto.Name != "Carlos Mendes" {
		t.Fatalf("name should be untouched, got %q", dto.Name)
	}
	if dto.Notes == nil || *dto.Notes != "prefere contato por email" {
		t.Fatalf("notes not updated: %v", dto.Notes)
	}
}

func TestServiceGetByIDNotFound(t *testing.T) {
	svc, err := NewService(&stubCustomerRepo{err: gorm.ErrRecordNotFound})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.GetByID(context.Background(), uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", gotErr)
	}
}

func TestServiceDeleteNotFound(t *testing.T) {
	svc, err := NewService(&stubCustomerRepo{err: gorm.ErrRecordNotFound})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	gotErr := svc.Delete(context.Background(), uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", gotErr)
	}
}
