package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// PrometheusClient records oracle metrics into Prometheus collectors.
type PrometheusClient struct {
	logger *zap.Logger

	counters   map[string]*prometheus.CounterVec
	histograms map[string]*prometheus.HistogramVec
}

var oracleLabels = []string{LabelMethod, LabelStatus}

// NewPrometheusClient registers the oracle collectors with reg. A nil reg
// means prometheus.DefaultRegisterer.
func NewPrometheusClient(reg prometheus.Registerer, l *zap.Logger) (*PrometheusClient, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if l == nil {
		l = zap.L()
	}

	calls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: MetricOracleCalls,
		Help: "Number of oracle contract operations.",
	}, oracleLabels)
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    MetricOracleCallDuration,
		Help:    "Duration of oracle contract operations in milliseconds.",
		Buckets: []float64{5, 25, 100, 250, 500, 1000, 2500, 5000, 10000, 30000},
	}, oracleLabels)

	calls, err := registerOrReuse(reg, calls)
	if err != nil {
		l.Error("Failed to register prometheus collector", zap.String("name", MetricOracleCalls), zap.Error(err))
		return nil, err
	}
	duration, err = registerOrReuse(reg, duration)
	if err != nil {
		l.Error("Failed to register prometheus collector", zap.String("name", MetricOracleCallDuration), zap.Error(err))
		return nil, err
	}

	return &PrometheusClient{
		logger:     l,
		counters:   map[string]*prometheus.CounterVec{MetricOracleCalls: calls},
		histograms: map[string]*prometheus.HistogramVec{MetricOracleCallDuration: duration},
	}, nil
}

// registerOrReuse registers c, or returns the collector already registered
// under the same descriptor so that several clients can share one registry.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// formatLabels keeps only the labels the oracle collectors declare. Sink
// default labels such as the network still reach other backends.
func (pmc *PrometheusClient) formatLabels(labels []Label) prometheus.Labels {
	l := make(prometheus.Labels, len(oracleLabels))
	for _, label := range labels {
		for _, name := range oracleLabels {
			if label.Name == name {
				l[label.Name] = label.Value
			}
		}
	}
	return l
}

// Incr adds value to the named counter. Unknown names are logged and ignored.
func (pmc *PrometheusClient) Incr(name string, labels []Label, value float64) error {
	m, ok := pmc.counters[name]
	if !ok {
		pmc.logger.Warn("Prometheus counter not found", zap.String("name", name))
		return nil
	}
	c, err := m.GetMetricWith(pmc.formatLabels(labels))
	if err != nil {
		return err
	}
	c.Add(value)
	return nil
}

// Timing observes value, in milliseconds, on the named histogram.
func (pmc *PrometheusClient) Timing(name string, value time.Duration, labels []Label) error {
	m, ok := pmc.histograms[name]
	if !ok {
		pmc.logger.Warn("Prometheus histogram not found", zap.String("name", name))
		return nil
	}
	h, err := m.GetMetricWith(pmc.formatLabels(labels))
	if err != nil {
		return err
	}
	h.Observe(float64(value.Milliseconds()))
	return nil
}
