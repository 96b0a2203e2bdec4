// Package metrics emits thermod's per-cycle gauges to DogStatsD,
// adapted from the teacher's internal/datadog package (InitMetrics/
// Gauge globals wired to env.Cfg) into an injectable Metrics value
// wired from internal/config instead.
package metrics

import (
	"github.com/DataDog/datadog-go/statsd"
	"github.com/rs/zerolog/log"
)

// Metrics wraps a DogStatsD client. A Metrics with a nil client (from
// New when the agent address can't be reached, or when the caller
// builds Disabled()) makes every method a no-op.
type Metrics struct {
	client *statsd.Client
}

// New connects to the DogStatsD agent at addr with the given
// namespace/tags. Connection failures are logged and degrade to a
// no-op Metrics rather than failing daemon startup, matching the
// teacher's "metrics are best-effort" treatment.
func New(addr, namespace string, tags []string) *Metrics {
	if addr == "" {
		return &Metrics{}
	}

	client, err := statsd.New(addr)
	if err != nil {
		log.Warn().Err(err).Msg("failed to create dogstatsd client, metrics disabled")
		return &Metrics{}
	}

	client.Namespace = namespace
	client.Tags = tags

	log.Info().Str("addr", addr).Str("namespace", namespace).Strs("tags", tags).Msg("metrics initialized")
	return &Metrics{client: client}
}

// Disabled returns a Metrics value that drops every call, for when
// config.Datadog.Enabled is false.
func Disabled() *Metrics {
	return &Metrics{}
}

func (m *Metrics) Gauge(name string, value float64, tags ...string) {
	if m.client == nil {
		return
	}
	if err := m.client.Gauge(name, value, tags, 1); err != nil {
		log.Warn().Err(err).Str("metric", name).Msg("failed to emit gauge metric")
	}
}

// PublishCycle emits the three gauges thermod tracks per control-cycle
// iteration (spec.md §4.2's observable outcome): current temperature,
// target temperature, and whether the actuator is on.
func (m *Metrics) PublishCycle(currentTemp float64, targetTemp *float64, actuatorOn bool) {
	m.Gauge("thermod.current_temperature", currentTemp)
	if targetTemp != nil {
		m.Gauge("thermod.target_temperature", *targetTemp)
	}
	on := 0.0
	if actuatorOn {
		on = 1.0
	}
	m.Gauge("thermod.heating_status", on)
}
