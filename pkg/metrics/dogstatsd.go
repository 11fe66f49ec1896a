package metrics

import (
	"fmt"
	"time"

	"github.com/DataDog/datadog-go/v5/statsd"
	"go.uber.org/zap"
)

// DogStatsdClient ships oracle metrics to a DogStatsD agent.
type DogStatsdClient struct {
	client     statsd.ClientInterface
	logger     *zap.Logger
	sampleRate float64
}

// NewDogStatsdClient connects to the agent at addr (host:port or unix://path).
func NewDogStatsdClient(addr string, sampleRate float64, l *zap.Logger) (*DogStatsdClient, error) {
	if l == nil {
		l = zap.L()
	}
	if sampleRate <= 0 {
		sampleRate = 1
	}
	s, err := statsd.New(addr,
		statsd.WithNamespace("ora."),
		statsd.WithBufferFlushInterval(2*time.Second),
	)
	if err != nil {
		l.Error("Failed to create dogstatsd metrics client", zap.Error(err))
		return nil, err
	}

	return &DogStatsdClient{
		client:     s,
		logger:     l,
		sampleRate: sampleRate,
	}, nil
}

func (s *DogStatsdClient) formatLabels(labels []Label) []string {
	tags := make([]string, 0, len(labels))
	for _, label := range labels {
		tags = append(tags, fmt.Sprintf("%s:%s", label.Name, label.Value))
	}
	return tags
}

// Incr adds value to the named counter.
func (s *DogStatsdClient) Incr(name string, labels []Label, value float64) error {
	return s.client.Count(name, int64(value), s.formatLabels(labels), s.sampleRate)
}

// Timing records a duration.
func (s *DogStatsdClient) Timing(name string, value time.Duration, labels []Label) error {
	return s.client.Timing(name, value, s.formatLabels(labels), s.sampleRate)
}

// Close flushes buffered metrics and closes the socket.
func (s *DogStatsdClient) Close() error {
	if err := s.client.Flush(); err != nil {
		s.logger.Error("Failed to flush dogstatsd metrics client", zap.Error(err))
	}
	return s.client.Close()
}
