package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StockMetrics records stock ledger activity.
type StockMetrics struct {
	movements  *prometheus.CounterVec
	rejections prometheus.Counter
}

// NewStockMetrics registers the ledger metrics on the provided registerer.
func NewStockMetrics(reg prometheus.Registerer) *StockMetrics {
	if reg == nil {
		return &StockMetrics{}
	}
	movements := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_movements_total",
		Help: "Stock movements recorded, labelled by movement type.",
	}, []string{"type"})
	rejections := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stock_movements_rejected_total",
		Help: "Outbound movements rejected for insufficient stock.",
	})
	reg.MustRegister(movements, rejections)
	return &StockMetrics{
		movements:  movements,
		rejections: rejections,
	}
}

// IncMovement increments the movement counter for the given type.
func (s *StockMetrics) IncMovement(movementType string) {
	if s == nil || s.movements == nil {
		return
	}
	s.movements.WithLabelValues(normalizeLabel(movementType)).Inc()
}

// IncRejection increments the insufficient-stock rejection counter.
func (s *StockMetrics) IncRejection() {
	if s == nil || s.rejections == nil {
		return
	}
	s.rejections.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
