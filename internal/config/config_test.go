package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestValidate_NonGPIODriverSkipsPinCheck(t *testing.T) {
	cfg := Config{Actuators: ActuatorsConfig{Driver: "script"}}
	assert.NoError(t, cfg.validate())
}

func TestValidate_GPIODriverRequiresHeatingPin(t *testing.T) {
	cfg := Config{Actuators: ActuatorsConfig{Driver: "gpio"}}
	err := cfg.validate()
	assert.Error(t, err)
}

func TestValidate_GPIODriverAcceptsDistinctPins(t *testing.T) {
	cfg := Config{Actuators: ActuatorsConfig{
		Driver:     "gpio",
		HeatingPin: intPtr(17),
		CoolingPin: intPtr(27),
	}}
	assert.NoError(t, cfg.validate())
}

func TestValidate_GPIODriverRejectsDuplicatePins(t *testing.T) {
	cfg := Config{Actuators: ActuatorsConfig{
		Driver:     "gpio",
		HeatingPin: intPtr(17),
		CoolingPin: intPtr(17),
	}}
	assert.Error(t, cfg.validate())
}

func TestValidate_CoolingSharesHeatingSkipsCoolingPinCheck(t *testing.T) {
	cfg := Config{Actuators: ActuatorsConfig{
		Driver:               "gpio",
		HeatingPin:           intPtr(17),
		CoolingSharesHeating: true,
	}}
	assert.NoError(t, cfg.validate())
}

func TestApplyDefaults_FillsZeroValues(t *testing.T) {
	cfg := Config{}
	cfg.applyDefaults()

	assert.Equal(t, "127.0.0.1:4344", cfg.SocketBindAddr)
	assert.Equal(t, 30, cfg.IntervalSeconds)
	assert.Equal(t, 30, cfg.SleepOnErrorSeconds)
	assert.Equal(t, 5, cfg.Thermometer.MovingAverageSamples)
}

func TestApplyDefaults_RespectsExplicitValues(t *testing.T) {
	cfg := Config{SocketBindAddr: "0.0.0.0:9000", IntervalSeconds: 10}
	cfg.applyDefaults()

	assert.Equal(t, "0.0.0.0:9000", cfg.SocketBindAddr)
	assert.Equal(t, 10, cfg.IntervalSeconds)
	assert.Equal(t, 10, cfg.SleepOnErrorSeconds, "sleep_on_error defaults to interval when unset")
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, 0, int(parseLogLevel("debug")))
	assert.Equal(t, 1, int(parseLogLevel("info")))
	assert.Equal(t, 1, int(parseLogLevel("bogus")))
}
