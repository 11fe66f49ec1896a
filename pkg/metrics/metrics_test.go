package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingClient struct {
	incrs   []recorded
	timings []recorded
	err     error
	closed  bool
}

type recorded struct {
	name   string
	labels []Label
	value  float64
	dur    time.Duration
}

func (r *recordingClient) Incr(name string, labels []Label, value float64) error {
	r.incrs = append(r.incrs, recorded{name: name, labels: labels, value: value})
	return r.err
}

func (r *recordingClient) Timing(name string, value time.Duration, labels []Label) error {
	r.timings = append(r.timings, recorded{name: name, labels: labels, dur: value})
	return r.err
}

func (r *recordingClient) Close() error {
	r.closed = true
	return nil
}

func Test_Sink(t *testing.T) {
	t.Run("Fans out to every client with default labels first", func(t *testing.T) {
		a, b := &recordingClient{}, &recordingClient{}
		s := NewSink(&SinkConfig{DefaultLabels: []Label{{Name: "network", Value: "sepolia"}}}, []Client{a, b}, nil)

		require.NoError(t, s.Incr("calls", []Label{{Name: "method", Value: "estimateFee"}}, 1))

		for _, c := range []*recordingClient{a, b} {
			require.Len(t, c.incrs, 1)
			assert.Equal(t, "calls", c.incrs[0].name)
			assert.Equal(t, []Label{
				{Name: "network", Value: "sepolia"},
				{Name: "method", Value: "estimateFee"},
			}, c.incrs[0].labels)
		}
	})
	t.Run("Nil labels use the defaults", func(t *testing.T) {
		a := &recordingClient{}
		s := NewSink(&SinkConfig{DefaultLabels: []Label{{Name: "network", Value: "mainnet"}}}, []Client{a}, nil)
		require.NoError(t, s.Timing("d", time.Second, nil))
		require.Len(t, a.timings, 1)
		assert.Equal(t, []Label{{Name: "network", Value: "mainnet"}}, a.timings[0].labels)
	})
	t.Run("Stops at the first client error", func(t *testing.T) {
		a := &recordingClient{err: errors.New("boom")}
		b := &recordingClient{}
		s := NewSink(nil, []Client{a, b}, nil)
		require.Error(t, s.Incr("calls", nil, 1))
		assert.Empty(t, b.incrs)
	})
	t.Run("Nil sink discards", func(t *testing.T) {
		var s *Sink
		assert.NoError(t, s.Incr("calls", nil, 1))
		assert.NoError(t, s.Timing("d", time.Second, nil))
		s.ObserveCall("getAIResult", time.Now(), nil)
		s.Close()
	})
	t.Run("ObserveCall labels method and status", func(t *testing.T) {
		a := &recordingClient{}
		s := NewSink(nil, []Client{a}, nil)

		s.ObserveCall("getAIResult", time.Now(), nil)
		s.ObserveCall("estimateFee", time.Now(), errors.New("rpc down"))

		require.Len(t, a.incrs, 2)
		require.Len(t, a.timings, 2)
		assert.Equal(t, MetricOracleCalls, a.incrs[0].name)
		assert.Equal(t, MetricOracleCallDuration, a.timings[0].name)
		assert.Equal(t, []Label{{Name: LabelMethod, Value: "getAIResult"}, {Name: LabelStatus, Value: StatusOK}}, a.incrs[0].labels)
		assert.Equal(t, []Label{{Name: LabelMethod, Value: "estimateFee"}, {Name: LabelStatus, Value: StatusError}}, a.incrs[1].labels)
	})
	t.Run("Close reaches closable clients", func(t *testing.T) {
		a := &recordingClient{}
		NewSink(nil, []Client{a}, nil).Close()
		assert.True(t, a.closed)
	})
}
