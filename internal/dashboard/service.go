package dashboard

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	pkgerrors "github.com/BielWaki/loja-backend/pkg/errors"
)

const defaultTopSoldLimit = 10

type dashboardRepository interface {
	CountInstruments(ctx context.Context) (int64, error)
	SumStockUnits(ctx context.Context) (int64, error)
	SumStockValue(ctx context.Context) (decimal.Decimal, error)
	CountSuppliers(ctx context.Context) (int64, error)
	CountCustomers(ctx context.Context) (int64, error)
	CountPendingMaintenance(ctx context.Context) (int64, error)
	TopSold(ctx context.Context, limit int) ([]TopSoldItem, error)
}

// Service assembles the dashboard summary.
type Service interface {
	Summary(ctx context.Context) (*Summary, error)
}

type service struct {
	repo dashboardRepository
}

// NewService builds a dashboard service with the provided repository.
func NewService(repo dashboardRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("dashboard repository required")
	}
	return &service{repo: repo}, nil
}

// Summary gathers every figure; partial failures are combined so one broken
// aggregate does not hide the others from the logs.
func (s *service) Summary(ctx context.Context) (*Summary, error) {
	var errs error
	summary := &Summary{StockValue: decimal.Zero}

	if v, err := s.repo.CountInstruments(ctx); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("count instruments: %w", err))
	} else {
		summary.TotalInstruments = v
	}
	if v, err := s.repo.SumStockUnits(ctx); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("sum stock units: %w", err))
	} else {
		summary.TotalStockUnits = v
	}
	if v, err := s.repo.SumStockValue(ctx); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("sum stock value: %w", err))
	} else {
		summary.StockValue = v
	}
	if v, err := s.repo.CountSuppliers(ctx); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("count suppliers: %w", err))
	} else {
		summary.TotalSuppliers = v
	}
	if v, err := s.repo.CountCustomers(ctx); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("count customers: %w", err))
	} else {
		summary.TotalCustomers = v
	}
	if v, err := s.repo.CountPendingMaintenance(ctx); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("count pending maintenance: %w", err))
	} else {
		summary.PendingMaintenance = v
	}
	if v, err := s.repo.TopSold(ctx, defaultTopSoldLimit); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("top sold: %w", err))
	} else {
		summary.TopSold = v
	}

	if errs != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, errs, "assemble dashboard")
	}
	return summary, nil
}
