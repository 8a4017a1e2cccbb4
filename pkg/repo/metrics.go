package repo

import "github.com/prometheus/client_golang/prometheus"

// Counter names, one per delivery operation outcome.
const (
	CounterGet               = "get.rpm"
	CounterGetRange          = "get.rpm-range"
	CounterDelete            = "delete.rpm"
	CounterDeleteNonExistent = "delete.nonexistent-rpm"
	CounterUpload            = "upload.rpm"
)

// CounterSink receives fire-and-forget operation counters. The delivery
// service never depends on a concrete monitoring backend.
type CounterSink interface {
	Increment(name string)
}

// NopSink discards all increments.
type NopSink struct{}

func (NopSink) Increment(string) {}

// PrometheusSink counts delivery operations in a prometheus CounterVec.
type PrometheusSink struct {
	ops *prometheus.CounterVec
}

// NewPrometheusSink creates a sink registered with the given registerer.
func NewPrometheusSink(reg prometheus.Registerer) *PrometheusSink {
	ops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "yumreposerver",
		Subsystem: "delivery",
		Name:      "operations_total",
		Help:      "Total number of artifact delivery operations",
	}, []string{"operation"})
	reg.MustRegister(ops)
	return &PrometheusSink{ops: ops}
}

func (s *PrometheusSink) Increment(name string) {
	s.ops.WithLabelValues(name).Inc()
}
