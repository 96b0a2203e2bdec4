// Package config loads thermod's process configuration: command-line
// flags plus a JSON config file, modeled on the teacher's
// internal/config/config.go (flag for process-level switches,
// encoding/json for the file, a reflect-based validate() pass over
// the GPIO pin table).
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"reflect"

	"github.com/rs/zerolog"
)

// ThermometerConfig selects and configures the thermometer driver.
type ThermometerConfig struct {
	Driver string `json:"driver"` // "onewire", "script", "analog"

	OneWireDeviceID string `json:"one_wire_device_id"`
	OneWireBusPath  string `json:"one_wire_bus_path"`

	ScriptPath string   `json:"script_path"`
	ScriptArgs []string `json:"script_args"`

	AnalogChannelPath string  `json:"analog_channel_path"`
	AnalogSlope       float64 `json:"analog_slope"`
	AnalogIntercept   float64 `json:"analog_intercept"`

	SourceScale string `json:"source_scale"` // scale the raw driver reports in

	OutlierMaxDelta      float64 `json:"outlier_max_delta"`
	MovingAverageSamples int     `json:"moving_average_samples"`
	PollIntervalSeconds  int     `json:"poll_interval_seconds"`
}

// ActuatorsConfig selects the actuator driver(s) and pin table.
type ActuatorsConfig struct {
	Driver string `json:"driver"` // "gpio", "script", "fake"

	HeatingPin        *int `json:"heating_pin"`
	HeatingActiveHigh bool `json:"heating_active_high"`

	CoolingPin           *int `json:"cooling_pin"`
	CoolingActiveHigh    bool `json:"cooling_active_high"`
	CoolingSharesHeating bool `json:"cooling_shares_heating"`

	OnScript  string `json:"on_script"`
	OffScript string `json:"off_script"`
}

// DatadogConfig configures the statsd metrics sink.
type DatadogConfig struct {
	Enabled   bool     `json:"enabled"`
	AgentAddr string   `json:"agent_addr"`
	Namespace string   `json:"namespace"`
	Tags      []string `json:"tags"`
}

// NotificationsConfig configures the ntfy-style alert sink.
type NotificationsConfig struct {
	Enabled bool   `json:"enabled"`
	URL     string `json:"url"`
	Topic   string `json:"topic"`
}

// Config is thermod's full process configuration: flag-supplied
// paths and mode switches, plus the JSON-decoded body below them.
type Config struct {
	ConfigFile    string
	TimetableFile string
	LogLevel      zerolog.Level
	SafeMode      bool

	SocketBindAddr      string `json:"socket_bind_addr"`
	IntervalSeconds     int    `json:"interval_seconds"`
	SleepOnErrorSeconds int    `json:"sleep_on_error_seconds"`

	Thermometer   ThermometerConfig   `json:"thermometer"`
	Actuators     ActuatorsConfig     `json:"actuators"`
	Datadog       DatadogConfig       `json:"datadog"`
	Notifications NotificationsConfig `json:"notifications"`
}

// Load parses process flags, decodes the JSON config file they name,
// applies defaults and validates the result. Unlike the teacher's
// Load (which panics on any failure) this returns an error, so
// cmd/thermod/main.go can map failures onto the exit-code enumeration.
func Load() (Config, error) {
	var cfg Config
	var logLevel string

	flag.StringVar(&cfg.ConfigFile, "config-file", "config.json", "Path to thermod's config file")
	flag.StringVar(&cfg.TimetableFile, "timetable-file", "timetable.json", "Path to the persisted timetable file")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&cfg.SafeMode, "safe-mode", false, "Disable actual GPIO switching for dry runs")
	flag.Parse()

	cfg.LogLevel = parseLogLevel(logLevel)

	file, err := os.Open(cfg.ConfigFile)
	if err != nil {
		return Config{}, fmt.Errorf("opening config file %s: %w", cfg.ConfigFile, err)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", cfg.ConfigFile, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.SocketBindAddr == "" {
		cfg.SocketBindAddr = "127.0.0.1:4344"
	}
	if cfg.IntervalSeconds == 0 {
		cfg.IntervalSeconds = 30
	}
	if cfg.SleepOnErrorSeconds == 0 {
		cfg.SleepOnErrorSeconds = cfg.IntervalSeconds
	}
	if cfg.Thermometer.PollIntervalSeconds == 0 {
		cfg.Thermometer.PollIntervalSeconds = cfg.IntervalSeconds
	}
	if cfg.Thermometer.MovingAverageSamples == 0 {
		cfg.Thermometer.MovingAverageSamples = 5
	}
}

func parseLogLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// validate checks the actuator pin table for missing/duplicate
// assignments, exactly like the teacher's reflect-based GPIO
// validation, scoped down to thermod's two possible pins (heating,
// and cooling when it doesn't share the heating relay).
func (cfg *Config) validate() error {
	if cfg.Actuators.Driver != "gpio" {
		return nil
	}

	type namedPin struct {
		name string
		pin  *int
	}
	pins := []namedPin{{"heating_pin", cfg.Actuators.HeatingPin}}
	if !cfg.Actuators.CoolingSharesHeating {
		pins = append(pins, namedPin{"cooling_pin", cfg.Actuators.CoolingPin})
	}

	used := map[int]string{}
	v := reflect.ValueOf(pins)
	for i := 0; i < v.Len(); i++ {
		np := v.Index(i).Interface().(namedPin)
		if np.pin == nil {
			return fmt.Errorf("config: missing required actuators.%s for gpio driver", np.name)
		}
		if other, exists := used[*np.pin]; exists {
			return fmt.Errorf("config: actuators.%s and actuators.%s both use pin %d", np.name, other, *np.pin)
		}
		used[*np.pin] = np.name
	}
	return nil
}
