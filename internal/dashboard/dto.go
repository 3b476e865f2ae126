package dashboard

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TopSoldItem ranks an instrument by outbound volume.
type TopSoldItem struct {
	InstrumentID uuid.UUID `json:"instrument_id"`
	Name         string    `json:"name"`
	TotalSold    int       `json:"total_sold"`
}

// Summary aggregates the store health figures shown on the landing page.
type Summary struct {
	TotalInstruments   int64           `json:"total_instruments"`
	TotalStockUnits    int64           `json:"total_stock_units"`
	StockValue         decimal.Decimal `json:"stock_value"`
	TotalSuppliers     int64           `json:"total_suppliers"`
	TotalCustomers     int64           `json:"total_customers"`
	PendingMaintenance int64           `json:"pending_maintenance"`
	TopSold            []TopSoldItem   `json:"top_sold"`
}
