// Package metrics records oracle call counts and latencies. A Sink fans each
// measurement out to any number of backends (Prometheus, DogStatsD).
package metrics

import (
	"time"

	"go.uber.org/zap"
)

// Metric names emitted by the oracle client.
const (
	MetricOracleCalls        = "ora_oracle_calls_total"
	MetricOracleCallDuration = "ora_oracle_call_duration_ms"
)

// Label names attached to every oracle metric.
const (
	LabelMethod = "method"
	LabelStatus = "status"
)

// Status label values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Label is a single name/value pair attached to a measurement.
type Label struct {
	Name  string
	Value string
}

// Client is a metrics backend.
type Client interface {
	Incr(name string, labels []Label, value float64) error
	Timing(name string, value time.Duration, labels []Label) error
}

// SinkConfig holds labels added to every measurement.
type SinkConfig struct {
	DefaultLabels []Label
}

// Sink forwards measurements to every configured client. A nil *Sink is
// valid and discards everything.
type Sink struct {
	clients []Client
	config  *SinkConfig
	logger  *zap.Logger
}

// NewSink builds a Sink over clients.
func NewSink(cfg *SinkConfig, clients []Client, l *zap.Logger) *Sink {
	if cfg == nil {
		cfg = &SinkConfig{}
	}
	if cfg.DefaultLabels == nil {
		cfg.DefaultLabels = []Label{}
	}
	if l == nil {
		l = zap.L()
	}
	return &Sink{
		clients: clients,
		config:  cfg,
		logger:  l,
	}
}

func mergeLabels(labels []Label, defaultLabels []Label) []Label {
	if labels == nil {
		return defaultLabels
	}
	merged := make([]Label, 0, len(defaultLabels)+len(labels))
	merged = append(merged, defaultLabels...)
	merged = append(merged, labels...)
	return merged
}

// Incr adds value to the counter name on every client. It stops at the first
// client error.
func (s *Sink) Incr(name string, labels []Label, value float64) error {
	if s == nil {
		return nil
	}
	merged := mergeLabels(labels, s.config.DefaultLabels)
	for _, client := range s.clients {
		if err := client.Incr(name, merged, value); err != nil {
			return err
		}
	}
	return nil
}

// Timing records a duration on every client.
func (s *Sink) Timing(name string, value time.Duration, labels []Label) error {
	if s == nil {
		return nil
	}
	merged := mergeLabels(labels, s.config.DefaultLabels)
	for _, client := range s.clients {
		if err := client.Timing(name, value, merged); err != nil {
			return err
		}
	}
	return nil
}

// ObserveCall records one oracle call: a counter increment and its duration,
// both labelled with the method and whether err is nil. Backend failures are
// logged, never returned.
func (s *Sink) ObserveCall(method string, started time.Time, err error) {
	if s == nil {
		return
	}
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	labels := []Label{
		{Name: LabelMethod, Value: method},
		{Name: LabelStatus, Value: status},
	}
	if ierr := s.Incr(MetricOracleCalls, labels, 1); ierr != nil {
		s.logger.Warn("failed to record metric", zap.String("name", MetricOracleCalls), zap.Error(ierr))
	}
	if terr := s.Timing(MetricOracleCallDuration, time.Since(started), labels); terr != nil {
		s.logger.Warn("failed to record metric", zap.String("name", MetricOracleCallDuration), zap.Error(terr))
	}
}

// Close releases clients that hold resources, such as the DogStatsD socket.
func (s *Sink) Close() {
	if s == nil {
		return
	}
	for _, client := range s.clients {
		if c, ok := client.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil {
				s.logger.Warn("failed to close metrics client", zap.Error(err))
			}
		}
	}
}
