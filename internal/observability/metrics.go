package observability

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Search outcomes used as the "outcome" label.
const (
	OutcomeSolved     = "solved"
	OutcomeNoSolution = "no_solution"
	OutcomeCancelled  = "cancelled"
	OutcomeLimit      = "expansion_limit"
)

// SearchCollector exposes shipment-search Prometheus metrics.
type SearchCollector struct {
	gatherer prometheus.Gatherer

	Searches       *prometheus.CounterVec
	SearchDuration prometheus.Histogram
	StatesExpanded prometheus.Counter
	UnitsShipped   prometheus.Gauge
}

// NewSearchCollector registers search metrics against the provided registerer.
func NewSearchCollector(reg prometheus.Registerer) (*SearchCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	searches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shipping_searches_total",
		Help: "Shipment searches run, by outcome.",
	}, []string{"outcome"})
	if err := reg.Register(searches); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return nil, err
		}
		existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, fmt.Errorf("collector shipping_searches_total already registered with incompatible type")
		}
		searches = existing
	}

	duration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "shipping_search_duration_seconds",
		Help:    "Wall time of a complete shipment search.",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
	}), "shipping_search_duration_seconds")
	if err != nil {
		return nil, err
	}

	expanded, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shipping_states_expanded_total",
		Help: "Shipping states popped from the frontier and expanded.",
	}), "shipping_states_expanded_total")
	if err != nil {
		return nil, err
	}

	shipped, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "shipping_units_shipped",
		Help: "Units delivered by the best plan of the most recent search.",
	}), "shipping_units_shipped")
	if err != nil {
		return nil, err
	}

	return &SearchCollector{
		gatherer:       gatherer,
		Searches:       searches,
		SearchDuration: duration,
		StatesExpanded: expanded,
		UnitsShipped:   shipped,
	}, nil
}

// Gatherer returns the Prometheus gatherer associated with the collector.
func (c *SearchCollector) Gatherer() prometheus.Gatherer {
	if c == nil {
		return nil
	}
	return c.gatherer
}

// ObserveSearch records one finished search.
func (c *SearchCollector) ObserveSearch(outcome string, elapsed time.Duration, expanded, shipped int) {
	if c == nil {
		return
	}
	if c.Searches != nil {
		c.Searches.WithLabelValues(outcome).Inc()
	}
	if c.SearchDuration != nil {
		c.SearchDuration.Observe(elapsed.Seconds())
	}
	if c.StatesExpanded != nil && expanded > 0 {
		c.StatesExpanded.Add(float64(expanded))
	}
	if c.UnitsShipped != nil {
		c.UnitsShipped.Set(float64(shipped))
	}
}

// WriteTextfile dumps every metric of the collector's gatherer to path in
// the Prometheus text format.
func (c *SearchCollector) WriteTextfile(path string) error {
	if c == nil || c.gatherer == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, c.gatherer)
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
