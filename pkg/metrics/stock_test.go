package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestStockMetricsExportsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewStockMetrics(reg)
	metrics.IncMovement("entrada")
	metrics.IncMovement("entrada")
	metrics.IncMovement("saida")
	metrics.IncRejection()

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "stock_movements_total", "type", "entrada"); err != nil {
		t.Fatalf("fetch entrada: %v", err)
	} else if got != 2 {
		t.Fatalf("expected entrada=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "stock_movements_total", "type", "saida"); err != nil {
		t.Fatalf("fetch saida: %v", err)
	} else if got != 1 {
		t.Fatalf("expected saida=1, got %f", got)
	}

	mf := findMetricFamily(mfs, "stock_movements_rejected_total")
	if mf == nil || len(mf.GetMetric()) != 1 {
		t.Fatal("rejection counter not exported")
	}
	if got := mf.GetMetric()[0].GetCounter().GetValue(); got != 1 {
		t.Fatalf("expected rejections=1, got %f", got)
	}
}

func TestStockMetricsNilSafe(t *testing.T) {
	var metrics *StockMetrics
	metrics.IncMovement("entrada")
	metrics.IncRejection()

	empty := NewStockMetrics(nil)
	empty.IncMovement("saida")
	empty.IncRejection()
}

func TestHTTPMetricsExportsRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewHTTPMetrics(reg)
	metrics.Observe("GET", "/instruments", "200", 30*time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "http_requests_total", "route", "/instruments"); err != nil {
		t.Fatalf("fetch requests: %v", err)
	} else if got != 1 {
		t.Fatalf("expected requests=1, got %f", got)
	}

	mf := findMetricFamily(mfs, "http_request_duration_seconds")
	if mf == nil {
		t.Fatal("duration histogram not exported")
	}
	if sum := mf.GetMetric()[0].GetHistogram().GetSampleSum(); sum <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", sum)
	}
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
