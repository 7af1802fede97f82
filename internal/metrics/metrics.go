// Package metrics records aggregation and export events. PromRecorder backs
// the counters with Prometheus; NopRecorder discards them.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recorder receives events from the loads aggregator and CSV exporter.
type Recorder interface {
	Aggregated(rows int)
	ClassificationMiss(term string)
	Exported(kind string, rows int)
}

// NopRecorder implements Recorder with no-op methods.
type NopRecorder struct{}

func (NopRecorder) Aggregated(int)            {}
func (NopRecorder) ClassificationMiss(string) {}
func (NopRecorder) Exported(string, int)      {}

// PromRecorder records events in Prometheus metrics.
type PromRecorder struct {
	aggregations prometheus.Counter
	facultyRows  prometheus.Histogram
	misses       *prometheus.CounterVec
	exported     *prometheus.CounterVec
}

// NewPromRecorder registers the metrics on reg. A nil registerer defaults to
// the global Prometheus registerer.
func NewPromRecorder(reg prometheus.Registerer) (*PromRecorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	aggregations := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "facultyload_aggregations_total",
		Help: "Number of faculty load tables built",
	})
	facultyRows := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "facultyload_faculty_rows",
		Help:    "Faculty rows per aggregated schedule",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})
	misses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "facultyload_classification_misses_total",
		Help: "Sections skipped because their term matched no bucket",
	}, []string{"term"})
	exported := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "facultyload_exported_rows_total",
		Help: "CSV data rows written",
	}, []string{"kind"})

	var err error
	if aggregations, err = register(reg, aggregations); err != nil {
		return nil, err
	}
	if facultyRows, err = register(reg, facultyRows); err != nil {
		return nil, err
	}
	if misses, err = register(reg, misses); err != nil {
		return nil, err
	}
	if exported, err = register(reg, exported); err != nil {
		return nil, err
	}
	return &PromRecorder{
		aggregations: aggregations,
		facultyRows:  facultyRows,
		misses:       misses,
		exported:     exported,
	}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (p *PromRecorder) Aggregated(rows int) {
	p.aggregations.Inc()
	p.facultyRows.Observe(float64(rows))
}

func (p *PromRecorder) ClassificationMiss(term string) {
	p.misses.WithLabelValues(term).Inc()
}

func (p *PromRecorder) Exported(kind string, rows int) {
	p.exported.WithLabelValues(kind).Add(float64(rows))
}
