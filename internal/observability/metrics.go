package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	encodes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "genlwire",
			Subsystem: "codec",
			Name:      "encodes_total",
			Help:      "Attribute set encodes.",
		},
		[]string{"outcome"},
	)
	decodes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "genlwire",
			Subsystem: "codec",
			Name:      "decodes_total",
			Help:      "Attribute set decodes.",
		},
		[]string{"outcome"},
	)
	encodeAttrs = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "genlwire",
			Subsystem: "codec",
			Name:      "encode_attributes",
			Help:      "Attributes per encoded set.",
			Buckets:   []float64{1, 2, 4, 8, 16, 32, 64},
		},
	)
	decodeBytes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "genlwire",
			Subsystem: "codec",
			Name:      "decode_bytes",
			Help:      "Buffer size per decode in bytes.",
			Buckets:   prometheus.ExponentialBuckets(16, 4, 8),
		},
	)
	envelopes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "genlwire",
			Subsystem: "envelope",
			Name:      "responses_total",
			Help:      "Parsed response envelopes.",
		},
		[]string{"outcome"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(encodes, decodes, encodeAttrs, decodeBytes, envelopes)
	})
}

func RecordEncode(attrs int, err error) {
	RegisterMetrics()
	encodes.WithLabelValues(outcome(err)).Inc()
	if err == nil {
		encodeAttrs.Observe(float64(attrs))
	}
}

func RecordDecode(size int, err error) {
	RegisterMetrics()
	decodes.WithLabelValues(outcome(err)).Inc()
	if err == nil {
		decodeBytes.Observe(float64(size))
	}
}

// RecordEnvelope counts parse outcomes; done markers and kernel-reported
// errors are distinct outcomes, not failures.
func RecordEnvelope(kind string) {
	RegisterMetrics()
	envelopes.WithLabelValues(kind).Inc()
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return "error"
}
