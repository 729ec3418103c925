package telemetry

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the batch check collectors on a dedicated registry.
// Values are written to a node exporter textfile; nothing scrapes the process.
type Metrics struct {
	registry *prometheus.Registry

	recordsChecked prometheus.Counter
	recordsFailing prometheus.Counter
	ruleFailures   *prometheus.CounterVec
	checkDuration  prometheus.Histogram
	rulesLoaded    prometheus.Gauge
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		recordsChecked: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "qualimarc_records_checked_total",
			Help: "Total records checked",
		}),
		recordsFailing: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "qualimarc_records_failing_total",
			Help: "Total records with at least one failed rule",
		}),
		ruleFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qualimarc_rule_failures_total",
				Help: "Total rule failures",
			},
			[]string{"rule_id", "priority"},
		),
		checkDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "qualimarc_record_check_duration_seconds",
			Help:    "Time to evaluate the rule set against one record",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		rulesLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "qualimarc_rules_loaded",
			Help: "Number of compound rules in the loaded rule set",
		}),
	}
	m.registry.MustRegister(m.recordsChecked, m.recordsFailing, m.ruleFailures, m.checkDuration, m.rulesLoaded)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// SetRulesLoaded records the size of the rule set.
func (m *Metrics) SetRulesLoaded(n int) { m.rulesLoaded.Set(float64(n)) }

// ObserveRecord records one checked record and the rules it failed.
func (m *Metrics) ObserveRecord(elapsed time.Duration, failedRules map[int]string) {
	m.recordsChecked.Inc()
	m.checkDuration.Observe(elapsed.Seconds())
	if len(failedRules) > 0 {
		m.recordsFailing.Inc()
	}
	for id, priority := range failedRules {
		m.ruleFailures.WithLabelValues(strconv.Itoa(id), priority).Inc()
	}
}

// WriteTextfile writes the current values in text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
