package metrics

import "github.com/prometheus/client_golang/prometheus"

// InventoryMetrics counts domain events that are not visible from HTTP traffic alone.
type InventoryMetrics struct {
	colorsGenerated prometheus.Counter
}

func NewInventoryMetrics(reg prometheus.Registerer) *InventoryMetrics {
	if reg == nil {
		return &InventoryMetrics{}
	}
	generated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "category_colors_generated_total",
		Help: "Category colors picked by the distance generator.",
	})
	reg.MustRegister(generated)
	return &InventoryMetrics{colorsGenerated: generated}
}

func (m *InventoryMetrics) IncColorsGenerated() {
	if m == nil || m.colorsGenerated == nil {
		return
	}
	m.colorsGenerated.Inc()
}
